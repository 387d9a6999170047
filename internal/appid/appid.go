// Package appid resolves the application identity: binary name, env prefix
// and config name.
package appid

import (
	"context"
	"strings"

	"github.com/fulmenhq/gofulmen/appidentity"

	appidentityassets "github.com/dingolabs/dingo/internal/assets/appidentity"
)

// Fallback names used when no identity can be loaded.
const (
	DefaultBinaryName = "dingo"
	DefaultEnvPrefix  = "DINGO_"
)

func init() {
	// An external .fulmen/app.yaml or FULMEN_APP_IDENTITY_PATH still wins.
	_ = appidentity.RegisterEmbeddedIdentityYAML(appidentityassets.YAML)
}

func Get(ctx context.Context) (*appidentity.Identity, error) {
	return appidentity.Get(ctx)
}

// BinaryName returns the identity's binary name, or DefaultBinaryName.
func BinaryName(ctx context.Context) string {
	identity, err := Get(ctx)
	if err != nil || identity == nil || strings.TrimSpace(identity.BinaryName) == "" {
		return DefaultBinaryName
	}
	return identity.BinaryName
}

// EnvPrefix returns the identity's env prefix with a trailing underscore.
func EnvPrefix(ctx context.Context) string {
	identity, err := Get(ctx)
	if err != nil || identity == nil || strings.TrimSpace(identity.EnvPrefix) == "" {
		return DefaultEnvPrefix
	}
	prefix := identity.EnvPrefix
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix
}
