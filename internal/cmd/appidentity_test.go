package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dingolabs/dingo/internal/appid"
)

var fixedTime = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestAppIdentityLoading(t *testing.T) {
	identity, err := appid.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, identity)

	require.Equal(t, "dingo", identity.BinaryName)
	require.NotEmpty(t, identity.Vendor)
	require.NotEmpty(t, identity.ConfigName)
	require.True(t, strings.HasSuffix(identity.EnvPrefix, "_"), "env prefix %q", identity.EnvPrefix)
}

func TestRootCommandUsesIdentity(t *testing.T) {
	require.Equal(t, "dingo", rootCmd.Name())
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("api-url"))
	require.NotNil(t, rootCmd.PersistentFlags().ShorthandLookup("o"))
}
