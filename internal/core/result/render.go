package result

import (
	"fmt"
	"strings"

	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/output"
)

const (
	// SuccessTitle heads every result view.
	SuccessTitle = "Operation Successful"
	// FailureTitle heads every error view.
	FailureTitle = "Operation failed"
)

// RenderBody classifies and renders body in one step.
func RenderBody(op core.Operation, body any) output.View {
	return Render(Classify(op, body))
}

// Render builds the view for a classified result.
func Render(r Result) output.View {
	view := output.View{
		Title:     SuccessTitle,
		Operation: string(r.Operation),
		Kind:      string(r.Kind),
		Header:    header(r.Common),
	}

	switch r.Kind {
	case KindResearch:
		view.Sections = researchSections(r.Research)
	case KindEngagement:
		view.Sections = engagementSections(r.Engagement)
	case KindAnalysis:
		view.Sections = analysisSections(r.Analysis)
	case KindContent:
		view.Sections = []output.Section{{Title: "Generated Content", Text: text(r.Content)}}
	default:
		view.Sections = []output.Section{{Title: "Execution Result", Blocks: []string{output.IndentJSON(r.Body)}}}
	}
	return view
}

// ErrorView is the body of an error modal.
func ErrorView(message string) output.View {
	return output.View{
		Title:    FailureTitle,
		Kind:     "error",
		Sections: []output.Section{{Title: "Error", Text: message}},
	}
}

func header(c Common) []output.Field {
	fields := []output.Field{
		{Label: "Task ID", Value: orDefault(c.TaskID, "Unknown")},
		{Label: "Status", Value: orDefault(c.Status, "Submitted")},
	}
	if c.Message != "" {
		fields = append(fields, output.Field{Label: "Message", Value: c.Message})
	}
	return fields
}

func researchSections(r *Research) []output.Section {
	if r == nil {
		r = &Research{}
	}
	status := orDefault(r.Status, "Unknown")
	if r.Status == "completed" {
		status = "Completed"
	}

	sections := []output.Section{
		{
			Title: "Research Summary",
			Fields: []output.Field{
				{Label: "Research ID", Value: orDefault(r.ResearchID, "Unknown")},
				{Label: "Status", Value: status},
				{Label: "Research Type", Value: orDefault(r.ResearchType, "Unknown")},
				{Label: "Target", Value: orDefault(r.Target, "Unknown")},
			},
		},
		{Title: "Research Report", Text: text(r.Report)},
	}
	if truthy(r.Metadata) {
		sections = append(sections, output.Section{
			Title:  "Research Metadata",
			Blocks: []string{output.IndentJSON(r.Metadata)},
		})
	}
	return sections
}

func engagementSections(e *Engagement) []output.Section {
	if e == nil {
		e = &Engagement{}
	}
	cfg := e.Config

	interactions := strings.Join(cfg.InteractionTypes, ", ")
	sections := []output.Section{
		{
			Title: "Engagement Summary",
			Fields: []output.Field{
				{Label: "Target Repository", Value: orDefault(cfg.Repository, "Unknown")},
				{Label: "Interaction Types", Value: orDefault(interactions, "Unknown")},
				{Label: "Lookback Period", Value: numberOr(cfg.LookbackDays, "30") + " days"},
				{Label: "Target Count", Value: numberOr(cfg.TargetCount, "10")},
			},
		},
	}

	if truthy(e.Insights) {
		sections = append(sections, output.Section{Title: "Execution Insights", Text: text(e.Insights)})
	}
	if truthy(e.Recommendations) {
		sections = append(sections, output.Section{Title: "Recommendations", Items: items(e.Recommendations)})
	}
	if truthy(e.Raw) {
		sections = append(sections, output.Section{Title: "Detailed Engagement Report", Text: text(e.Raw)})
	}
	if len(e.Tasks) > 0 {
		tasks := output.Section{Title: "Task Execution Details"}
		for i, task := range e.Tasks {
			sub := output.Section{
				Title:  fmt.Sprintf("Task %d: %s", i+1, orDefault(task.Agent, "Unknown Agent")),
				Fields: []output.Field{{Label: "Expected Output", Value: orDefault(task.ExpectedOutput, "Unknown")}},
			}
			if truthy(task.Raw) {
				sub.Text = text(task.Raw)
			}
			tasks.Subsections = append(tasks.Subsections, sub)
		}
		sections = append(sections, tasks)
	}
	if usage := e.TokenUsage; usage != nil {
		sections = append(sections, output.Section{
			Title: "Resource Usage",
			Fields: []output.Field{
				{Label: "Total Tokens", Value: grouped(usage.TotalTokens)},
				{Label: "Successful Requests", Value: number(usage.SuccessfulRequests)},
				{Label: "Prompt Tokens", Value: grouped(usage.PromptTokens)},
				{Label: "Completion Tokens", Value: grouped(usage.CompletionTokens)},
			},
		})
	}
	return sections
}

func analysisSections(a *Analysis) []output.Section {
	if a == nil {
		a = &Analysis{}
	}
	sections := []output.Section{
		{
			Title: "Analysis Summary",
			Fields: []output.Field{
				{Label: "Users Analyzed", Value: number(a.TotalUsers)},
				{Label: "Analysis Depth", Value: orDefault(a.AnalysisDepth, "Basic")},
				{Label: "Report Language", Value: languageName(a.Language)},
				{Label: "Completion Time", Value: orDefault(a.CompletionTime, "Unknown")},
			},
		},
	}
	if truthy(a.Results) {
		sections = append(sections, detailedAnalysis(a.Results))
	}
	return sections
}

// detailedAnalysis renders by runtime shape: text verbatim, a list as one
// block per element, anything else as a single block.
func detailedAnalysis(v any) output.Section {
	section := output.Section{Title: "Detailed Analysis"}
	switch typed := v.(type) {
	case string:
		section.Text = typed
	case []any:
		for _, item := range typed {
			section.Blocks = append(section.Blocks, output.IndentJSON(item))
		}
	default:
		section.Blocks = []string{output.IndentJSON(v)}
	}
	return section
}
