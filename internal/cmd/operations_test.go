package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/config"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	apperrors "github.com/dingolabs/dingo/internal/errors"
	"github.com/dingolabs/dingo/internal/output"
	"github.com/dingolabs/dingo/internal/server"
)

func TestOperationFlagsMirrorFormFields(t *testing.T) {
	cmd := newOperationCommand(catalog.SchemaFor(core.OperationCommunity))

	repo := cmd.Flags().Lookup("repository")
	require.NotNil(t, repo)
	require.Contains(t, repo.Usage, "(required)")

	types := cmd.Flags().Lookup("interaction-types")
	require.NotNil(t, types)
	require.Equal(t, "stringSlice", types.Value.Type())
	require.Contains(t, types.Usage, "star|follow")

	days := cmd.Flags().Lookup("lookback-days")
	require.NotNil(t, days)
	require.Equal(t, "30", days.DefValue)

	require.NotNil(t, cmd.Flags().Lookup("raw"))
	require.NotNil(t, cmd.Flags().Lookup("out"))
}

func TestEveryOperationHasACommand(t *testing.T) {
	for _, op := range core.Operations() {
		found, _, err := rootCmd.Find([]string{string(op)})
		require.NoError(t, err, op)
		require.Equal(t, string(op), found.Name())
	}
}

func TestValuesFromFlags(t *testing.T) {
	cmd := newOperationCommand(catalog.SchemaFor(core.OperationCommunity))
	require.NoError(t, cmd.Flags().Set("repository", "octo/repo"))
	require.NoError(t, cmd.Flags().Set("interaction-types", "star, follow"))

	values, err := valuesFromFlags(cmd, catalog.SchemaFor(core.OperationCommunity))
	require.NoError(t, err)
	require.Equal(t, "octo/repo", values.Get("repository"))
	require.Equal(t, []string{"star", "follow"}, values["interaction_types"])
	require.Equal(t, "30", values.Get("lookback_days"))
}

func TestValuesFromFlagsLeavesUnsetRequiredFieldsOut(t *testing.T) {
	schema := catalog.SchemaFor(core.OperationGenerate)
	cmd := newOperationCommand(schema)

	values, err := valuesFromFlags(cmd, schema)
	require.NoError(t, err)
	require.NotContains(t, values, "content_type")

	err = catalog.Validate(schema, values)
	require.Error(t, err)
	require.Equal(t, core.ErrorValidation, core.KindOf(err))
}

func TestWriteOperationResultFormats(t *testing.T) {
	resp := &api.Response{StatusCode: 200, Body: map[string]any{
		"task_id": "t-1",
		"status":  "completed",
		"content": "# Draft",
	}}

	var table bytes.Buffer
	require.NoError(t, writeOperationResult(&table, core.OperationGenerate, resp, output.FormatTable, false, resultTarget{}))
	require.Contains(t, table.String(), "Operation Successful")
	require.Contains(t, table.String(), "# Draft")

	var raw bytes.Buffer
	require.NoError(t, writeOperationResult(&raw, core.OperationGenerate, resp, output.FormatTable, true, resultTarget{}))
	require.True(t, strings.HasPrefix(raw.String(), "{"))
	require.Contains(t, raw.String(), `"task_id": "t-1"`)
}

func TestWriteOperationResultToOutDir(t *testing.T) {
	dir := t.TempDir()
	resp := &api.Response{StatusCode: 200, Body: map[string]any{"task_id": "T 1", "content": "hello"}}

	var stdout bytes.Buffer
	require.NoError(t, writeOperationResult(&stdout, core.OperationGenerate, resp, output.FormatMarkdown, false, resultTarget{dir: dir}))
	require.Empty(t, stdout.String())

	data, err := os.ReadFile(filepath.Join(dir, "generate-t-1.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
}

func TestOperationCommandAgainstDemoBackend(t *testing.T) {
	ts := httptest.NewServer(server.New(server.Options{Host: "127.0.0.1", Version: "test"}).Handler())
	t.Cleanup(ts.Close)

	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())
	viper.Set("api.base_url", ts.URL+"/api/v1")
	viper.Set("output.format", "markdown")

	cmd := newOperationCommand(catalog.SchemaFor(core.OperationCommunity))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("repository", "octo/repo"))
	require.NoError(t, cmd.Flags().Set("interaction-types", "star"))

	require.NoError(t, cmd.RunE(cmd, nil))
	require.Contains(t, out.String(), "Operation Successful")
	require.Contains(t, out.String(), "octo/repo")
}

func TestReportOperationError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    foundry.ExitCode
		message string
	}{
		{
			name:    "http failure",
			err:     &core.Error{Kind: core.ErrorHTTP, StatusCode: 401, Message: "bad token"},
			want:    foundry.ExitExternalServiceUnavailable,
			message: "HTTP status: 401",
		},
		{
			name:    "validation",
			err:     &core.Error{Kind: core.ErrorValidation, Message: "Content type is required", Fields: []string{"content_type"}},
			want:    apperrors.ExitInvalidArgument,
			message: "Fields: content_type",
		},
		{
			name:    "transport failure",
			err:     errors.New("connection refused"),
			want:    foundry.ExitExternalServiceUnavailable,
			message: "Error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.Equal(t, tt.want, reportOperationError(&buf, tt.err))
			require.Contains(t, buf.String(), tt.message)
		})
	}
}

func TestReportOperationErrorNil(t *testing.T) {
	var buf bytes.Buffer
	require.Zero(t, reportOperationError(&buf, nil))
	require.Empty(t, buf.String())
}

func TestResultTargetPath(t *testing.T) {
	require.Equal(t, "out.json", resultTarget{file: "out.json"}.path("x", output.FormatJSON))
	require.Equal(t, filepath.Join("dir", "analyze-abc.yaml"), resultTarget{dir: "dir"}.path("Analyze ABC", output.FormatYAML))
	require.Empty(t, resultTarget{}.path("x", output.FormatTable))
	require.Empty(t, resultTarget{file: "-"}.path("x", output.FormatTable))
	require.Equal(t, "result", fileStem(" !! "))
}

func TestOutFlagsAreExclusive(t *testing.T) {
	cmd := newOperationCommand(catalog.SchemaFor(core.OperationGenerate))
	require.NoError(t, cmd.Flags().Set("out", "a.md"))
	require.NoError(t, cmd.Flags().Set("out-dir", "results"))
	require.Error(t, cmd.ValidateFlagGroups())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	var buf bytes.Buffer
	closeErr := errors.New("close: input/output error")

	err := writeAndClose(&buf, func() error { return closeErr }, "report\n")
	require.ErrorIs(t, err, closeErr)
	require.Equal(t, "report\n", buf.String())
}

func TestWriteAndClosePrefersWriteError(t *testing.T) {
	closed := false
	err := writeAndClose(failingWriter{}, func() error {
		closed = true
		return errors.New("close failed")
	}, "report")
	require.EqualError(t, err, "disk full")
	require.True(t, closed)
}
