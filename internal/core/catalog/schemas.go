package catalog

import "github.com/dingolabs/dingo/internal/core"

func languageField(label string) FieldSpec {
	return FieldSpec{
		Name:  "language",
		Label: label,
		Kind:  KindSelect,
		Options: []Option{
			{Value: "zh", Label: "Chinese"},
			{Value: "en", Label: "English"},
		},
		Default: "en",
	}
}

var schemas = map[core.Operation]FormSchema{
	core.OperationAnalyze: {
		Operation: core.OperationAnalyze,
		Title:     "User Analysis",
		Fields: []FieldSpec{
			{
				Name:        "username",
				Label:       "GitHub Username",
				Kind:        KindText,
				Required:    true,
				Placeholder: "e.g.: octocat",
				Help:        "Enter the GitHub username to analyze",
			},
			{
				Name:  "depth",
				Label: "Analysis depth",
				Kind:  KindSelect,
				Options: []Option{
					{Value: "basic", Label: "Basic Analysis"},
					{Value: "deep", Label: "Deep Analysis"},
				},
				Default: "basic",
			},
			languageField("Report language"),
		},
		SubmitLabel: "Start Analysis",
	},
	core.OperationGenerate: {
		Operation: core.OperationGenerate,
		Title:     "AI Content Generation",
		Fields: []FieldSpec{
			{
				Name:     "content_type",
				Label:    "Content type",
				Kind:     KindSelect,
				Required: true,
				Options: []Option{
					{Value: "blog_post", Label: "Blog Post"},
					{Value: "social_media", Label: "Social Media"},
					{Value: "email", Label: "Email Marketing"},
					{Value: "documentation", Label: "Technical Documentation"},
				},
			},
			{
				Name:        "topic",
				Label:       "Topic",
				Kind:        KindText,
				Required:    true,
				Placeholder: "e.g.: React Best Practices",
			},
			{
				Name:        "target_audience",
				Label:       "Target audience",
				Kind:        KindText,
				Placeholder: "e.g.: Front-end Developers",
			},
			{
				Name:        "keywords",
				Label:       "Keywords",
				Kind:        KindText,
				Placeholder: "Separate by comma, e.g.: React, performance optimization, best practices",
			},
			languageField("Language"),
		},
		SubmitLabel: "Generate content",
	},
	core.OperationCommunity: {
		Operation: core.OperationCommunity,
		Title:     "Community Interaction",
		Fields: []FieldSpec{
			{
				Name:        "repository",
				Label:       "Target repository",
				Kind:        KindText,
				Required:    true,
				Placeholder: "e.g.: facebook/react",
				Help:        "Format: owner/repo",
			},
			{
				Name:  "interaction_types",
				Label: "Interaction type",
				Kind:  KindMultiSelect,
				Options: []Option{
					{Value: "star", Label: "Star Project"},
					{Value: "follow", Label: "Follow User"},
					{Value: "comment", Label: "Comment Interaction"},
					{Value: "issue", Label: "Create Issue"},
				},
				Help: "Select one or more",
			},
			{
				Name:    "lookback_days",
				Label:   "Lookback days",
				Kind:    KindNumber,
				Default: "30",
				Min:     1,
				Max:     365,
			},
			languageField("Language"),
		},
		SubmitLabel: "Start interaction",
	},
	core.OperationCampaign: {
		Operation: core.OperationCampaign,
		Title:     "Marketing Campaign",
		Fields: []FieldSpec{
			{
				Name:        "campaign_name",
				Label:       "Campaign name",
				Kind:        KindText,
				Required:    true,
				Placeholder: "e.g.: React Developer Promotion Campaign",
			},
			{
				Name:        "target_audience",
				Label:       "Target audience",
				Kind:        KindTextarea,
				Placeholder: "Describe your target audience...",
			},
			{
				Name:  "goals",
				Label: "Marketing goals",
				Kind:  KindMultiSelect,
				Options: []Option{
					{Value: "brand_awareness", Label: "Brand Awareness"},
					{Value: "user_acquisition", Label: "User Acquisition"},
					{Value: "community_growth", Label: "Community Growth"},
					{Value: "engagement", Label: "User Engagement"},
				},
			},
			{
				Name:  "budget",
				Label: "Budget range",
				Kind:  KindSelect,
				Options: []Option{
					{Value: "low", Label: "Low Budget (< $1000)"},
					{Value: "medium", Label: "Medium Budget ($1000-$5000)"},
					{Value: "high", Label: "High Budget (> $5000)"},
				},
				Default: "low",
			},
			languageField("Language"),
		},
		SubmitLabel: "Create campaign",
	},
	core.OperationResearch: {
		Operation: core.OperationResearch,
		Title:     "Market Research",
		Fields: []FieldSpec{
			{
				Name:     "research_type",
				Label:    "Research type",
				Kind:     KindSelect,
				Required: true,
				Options: []Option{
					{Value: "competitor", Label: "Competitor Analysis"},
					{Value: "technology", Label: "Technology Trend Research"},
					{Value: "market", Label: "Market Trend Analysis"},
					{Value: "user_feedback", Label: "User Feedback Analysis"},
				},
			},
			{
				Name:        "target",
				Label:       "Research target",
				Kind:        KindText,
				Required:    true,
				Placeholder: "e.g.: Great Expectations, Data Quality Assessment",
				Help:        "Enter the specific target or keywords for research",
			},
			{
				Name:  "depth",
				Label: "Research depth",
				Kind:  KindSelect,
				Options: []Option{
					{Value: "shallow", Label: "Shallow Research (Quick)"},
					{Value: "medium", Label: "Medium Depth"},
					{Value: "deep", Label: "Deep Research (Detailed)"},
				},
				Default: "shallow",
			},
			languageField("Report language"),
			{
				Name:        "requirements",
				Label:       "Additional requirements (Optional)",
				Kind:        KindTextarea,
				Placeholder: "e.g.: Focus on open source projects, include price comparison, etc.",
			},
		},
		SubmitLabel: "Start research",
	},
}
