// Package result classifies backend responses and renders them as views.
//
// A response body is classified once, by which top-level fields are present,
// into one of five variants. Rendering then matches on the variant; it never
// fails, whatever shape the body has.
package result

import (
	"github.com/dingolabs/dingo/internal/core"
)

// Kind is the discriminated variant of a successful response.
type Kind string

const (
	KindResearch   Kind = "research"
	KindEngagement Kind = "engagement"
	KindAnalysis   Kind = "analysis"
	KindContent    Kind = "content"
	KindGeneric    Kind = "generic"
)

// Common holds the fields shown for every variant.
type Common struct {
	TaskID  string `mapstructure:"task_id"`
	Status  string `mapstructure:"status"`
	Message string `mapstructure:"message"`
}

// Research is a market research report.
type Research struct {
	ResearchID   string `mapstructure:"research_id"`
	Status       string `mapstructure:"status"`
	ResearchType string `mapstructure:"research_type"`
	Target       string `mapstructure:"target"`
	Report       any    `mapstructure:"result"`
	Metadata     any    `mapstructure:"metadata"`
}

// EngagementConfig echoes the community interaction request.
type EngagementConfig struct {
	Repository       string   `mapstructure:"repository"`
	InteractionTypes []string `mapstructure:"interaction_types"`
	LookbackDays     float64  `mapstructure:"lookback_days"`
	TargetCount      float64  `mapstructure:"target_count"`
}

// TaskOutput is one agent task of an engagement run.
type TaskOutput struct {
	Agent          string `mapstructure:"agent"`
	ExpectedOutput string `mapstructure:"expected_output"`
	Raw            any    `mapstructure:"raw"`
}

// TokenUsage counts the model resources spent on an engagement run.
type TokenUsage struct {
	TotalTokens        float64 `mapstructure:"total_tokens"`
	SuccessfulRequests float64 `mapstructure:"successful_requests"`
	PromptTokens       float64 `mapstructure:"prompt_tokens"`
	CompletionTokens   float64 `mapstructure:"completion_tokens"`
}

// Engagement is a community interaction run.
type Engagement struct {
	Config          EngagementConfig
	Insights        any
	Recommendations any
	Raw             any
	Tasks           []TaskOutput
	TokenUsage      *TokenUsage
}

// Analysis is a GitHub user analysis.
type Analysis struct {
	TotalUsers     float64 `mapstructure:"total_users"`
	AnalysisDepth  string  `mapstructure:"analysis_depth"`
	Language       string  `mapstructure:"language"`
	CompletionTime string  `mapstructure:"completion_time"`
	Results        any     `mapstructure:"analysis_results"`
}

// Result is a classified response. Exactly one variant pointer is set for
// every kind but KindGeneric.
type Result struct {
	Operation core.Operation
	Kind      Kind
	Body      any
	Common    Common

	Research   *Research
	Engagement *Engagement
	Analysis   *Analysis
	Content    any
}

// Classify picks the variant of body. The first matching rule wins:
// research (only for the research operation), engagement, analysis, content,
// then generic.
func Classify(op core.Operation, body any) Result {
	obj, _ := body.(map[string]any)

	r := Result{Operation: op, Body: body}
	decodeLenient(obj, &r.Common)

	switch {
	case op == core.OperationResearch && truthy(obj["result"]):
		r.Kind = KindResearch
		r.Research = &Research{}
		decodeLenient(obj, r.Research)
	case truthy(obj["engagement_result"]):
		r.Kind = KindEngagement
		r.Engagement = classifyEngagement(obj)
	case truthy(obj["insights"]):
		r.Kind = KindAnalysis
		r.Analysis = &Analysis{}
		decodeLenient(asObject(obj["insights"]), r.Analysis)
	case truthy(obj["content"]):
		r.Kind = KindContent
		r.Content = obj["content"]
	default:
		r.Kind = KindGeneric
	}
	return r
}

// classifyEngagement reads the engagement variant. The run data may sit one
// level deeper under a second engagement_result key.
func classifyEngagement(obj map[string]any) *Engagement {
	outer := asObject(obj["engagement_result"])

	data := outer
	if nested := outer["engagement_result"]; truthy(nested) {
		data = asObject(nested)
	}

	e := &Engagement{
		Insights:        obj["insights"],
		Recommendations: obj["recommendations"],
		Raw:             data["raw"],
	}
	decodeLenient(asObject(outer["config"]), &e.Config)

	if tasks, ok := data["tasks_output"].([]any); ok {
		for _, task := range tasks {
			var t TaskOutput
			decodeLenient(asObject(task), &t)
			e.Tasks = append(e.Tasks, t)
		}
	}
	if usage := data["token_usage"]; truthy(usage) {
		e.TokenUsage = &TokenUsage{}
		decodeLenient(asObject(usage), e.TokenUsage)
	}
	return e
}

func asObject(v any) map[string]any {
	obj, _ := v.(map[string]any)
	return obj
}
