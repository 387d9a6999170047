package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dingolabs/dingo/internal/core"
)

func TestSchemaForFieldCatalogue(t *testing.T) {
	tests := []struct {
		op     core.Operation
		title  string
		fields []string
	}{
		{core.OperationAnalyze, "User Analysis", []string{"username", "depth", "language"}},
		{core.OperationGenerate, "AI Content Generation", []string{"content_type", "topic", "target_audience", "keywords", "language"}},
		{core.OperationCommunity, "Community Interaction", []string{"repository", "interaction_types", "lookback_days", "language"}},
		{core.OperationCampaign, "Marketing Campaign", []string{"campaign_name", "target_audience", "goals", "budget", "language"}},
		{core.OperationResearch, "Market Research", []string{"research_type", "target", "depth", "language", "requirements"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			schema := SchemaFor(tt.op)
			require.Equal(t, tt.op, schema.Operation)
			require.Equal(t, tt.title, schema.Title)
			require.Equal(t, tt.fields, schema.FieldNames())
			require.NotEmpty(t, schema.SubmitLabel)
			require.False(t, schema.Placeholder())
		})
	}
}

func TestSchemaForUnknownReturnsPlaceholder(t *testing.T) {
	for _, op := range []core.Operation{core.OperationUnknown, "deploy", "ANALYZE"} {
		schema := SchemaFor(op)
		require.True(t, schema.Placeholder())
		require.Equal(t, "Functionality", schema.Title)
		require.Empty(t, schema.Fields)
		require.NotNil(t, schema.Fields)
	}
}

func TestSchemaForReturnsCopy(t *testing.T) {
	schema := SchemaFor(core.OperationCommunity)
	schema.Fields[0].Name = "mutated"
	schema.Fields[1].Options[0].Value = "mutated"

	fresh := SchemaFor(core.OperationCommunity)
	require.Equal(t, "repository", fresh.Fields[0].Name)
	require.Equal(t, "star", fresh.Fields[1].Options[0].Value)
}

func TestMultiValuedFields(t *testing.T) {
	community := SchemaFor(core.OperationCommunity)
	f, ok := community.Field("interaction_types")
	require.True(t, ok)
	require.True(t, f.MultiValued())

	campaign := SchemaFor(core.OperationCampaign)
	f, ok = campaign.Field("goals")
	require.True(t, ok)
	require.True(t, f.MultiValued())

	f, ok = campaign.Field("budget")
	require.True(t, ok)
	require.False(t, f.MultiValued())
}

func TestResearchExposesRequirements(t *testing.T) {
	f, ok := SchemaFor(core.OperationResearch).Field("requirements")
	require.True(t, ok)
	require.Equal(t, KindTextarea, f.Kind)
	require.False(t, f.Required)
}

func TestDefaults(t *testing.T) {
	values := Defaults(SchemaFor(core.OperationCommunity))
	require.Equal(t, "30", values.Get("lookback_days"))
	require.Equal(t, "en", values.Get("language"))
	require.Empty(t, values.Get("repository"))

	merged := WithDefaults(SchemaFor(core.OperationAnalyze), url.Values{"depth": {"deep"}, "username": {"octocat"}})
	require.Equal(t, "deep", merged.Get("depth"))
	require.Equal(t, "en", merged.Get("language"))
	require.Equal(t, "octocat", merged.Get("username"))
}

func TestValidate(t *testing.T) {
	schema := SchemaFor(core.OperationCommunity)

	require.NoError(t, Validate(schema, url.Values{
		"repository":        {"facebook/react"},
		"interaction_types": {"star", "comment"},
		"lookback_days":     {"30"},
	}))

	err := Validate(schema, url.Values{"repository": {"  "}})
	require.Error(t, err)
	classified := core.AsError(err)
	require.Equal(t, core.ErrorValidation, classified.Kind)
	require.Equal(t, []string{"repository"}, classified.Fields)
	require.Contains(t, classified.Message, "Target repository is required")

	err = Validate(schema, url.Values{
		"repository":        {"facebook/react"},
		"interaction_types": {"star", "fork"},
		"lookback_days":     {"400"},
	})
	require.Error(t, err)
	require.ElementsMatch(t, []string{"interaction_types", "lookback_days"}, core.AsError(err).Fields)

	err = Validate(schema, url.Values{"repository": {"a/b"}, "lookback_days": {"ten"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "whole number")
}

func TestValidateSelectOption(t *testing.T) {
	schema := SchemaFor(core.OperationGenerate)
	err := Validate(schema, url.Values{"content_type": {"podcast"}, "topic": {"Go"}})
	require.Error(t, err)
	require.Equal(t, []string{"content_type"}, core.AsError(err).Fields)

	require.NoError(t, Validate(schema, url.Values{"content_type": {"email"}, "topic": {"Go"}}))
}

func TestValidatePlaceholderAcceptsAnything(t *testing.T) {
	require.NoError(t, Validate(SchemaFor("unknown"), url.Values{"x": {"y"}}))
}
