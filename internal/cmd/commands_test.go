package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/config"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/output"
	"github.com/dingolabs/dingo/internal/status"
	"github.com/dingolabs/dingo/internal/ui/modal"
)

func TestWriteFormsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeForms(&buf, []catalog.FormSchema{catalog.SchemaFor(core.OperationGenerate)}, output.FormatTable))

	text := buf.String()
	require.Contains(t, text, "AI Content Generation (generate)")
	require.Contains(t, text, "--content-type")
	require.Contains(t, text, "blog_post")
}

func TestWriteFormsStructured(t *testing.T) {
	var js bytes.Buffer
	require.NoError(t, writeForms(&js, catalog.All(), output.FormatJSON))

	var decoded []catalog.FormSchema
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	require.Len(t, decoded, len(core.Operations()))
	require.Equal(t, core.OperationAnalyze, decoded[0].Operation)

	var ym bytes.Buffer
	require.NoError(t, writeForms(&ym, []catalog.FormSchema{catalog.SchemaFor(core.OperationCampaign)}, output.FormatYAML))

	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	require.Equal(t, "campaign", fromYAML[0]["operation"])
}

func TestWriteVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "2026-10-19")
	t.Cleanup(func() { SetVersionInfo("", "", "") })

	var basic bytes.Buffer
	writeVersion(&basic, "dingo", false)
	require.Equal(t, "dingo 1.2.3\n", basic.String())

	var extended bytes.Buffer
	writeVersion(&extended, "dingo", true)
	require.Contains(t, extended.String(), "Commit: abc")
	require.Contains(t, extended.String(), "Gofulmen:")
}

func TestNewClientFromConfig(t *testing.T) {
	SetVersionInfo("", "", "")
	cfg := &config.Config{API: config.APIConfig{BaseURL: "http://example.test/api/v1"}}

	client := newClient(cfg)
	require.Equal(t, "http://example.test/api/v1", client.BaseURL)
	require.Equal(t, "dingo/dev", client.UserAgent)

	cfg.API.UserAgent = "custom/1"
	require.Equal(t, "custom/1", newClient(cfg).UserAgent)
}

func TestConsoleOptionsPolicy(t *testing.T) {
	client := &api.Client{BaseURL: api.DefaultBaseURL}

	cfg := &config.Config{}
	require.Equal(t, modal.StackPolicyReplace, consoleOptions(cfg, client).Policy)

	cfg.UI.StackModals = true
	cfg.UI.TransitionDelay = 5
	opts := consoleOptions(cfg, client)
	require.Equal(t, modal.StackPolicyLegacy, opts.Policy)
	require.EqualValues(t, 5, opts.Timings.TransitionDelay)
	require.NotNil(t, opts.Pipeline)
}

func TestWriteBadge(t *testing.T) {
	var buf bytes.Buffer
	writeBadge(&buf, "http://localhost:8000/api/v1", status.BadgeOffline, fixedTime)
	require.Contains(t, buf.String(), "Status:  Offline")
	require.Contains(t, buf.String(), "Checked: 09:30:00")
}
