package coder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/pkg/llm"
)

// Plan is the generation plan surfaced in the response. Component entries are
// kept as raw JSON values: the plan is display-only and the model's component
// shape is not validated beyond "components is a list".
type Plan struct {
	Components    []interface{} `json:"components"`
	SearchQueries []interface{} `json:"search_queries"`
}

// Planner asks the model to decompose a requirement into components and KB
// search hints. Every failure mode collapses to a single-component default
// plan, so planning can never fail the pipeline.
type Planner struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewPlanner(provider llm.LLMProvider, log logger.ILogger) *Planner {
	return &Planner{provider: provider, logger: log}
}

func (p *Planner) Plan(ctx context.Context, requirements, projectType string) *Plan {
	prompt := p.composePrompt(requirements, projectType)

	raw, err := p.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		p.logger.Error("PLANNER", "Planning LLM call failed, falling back to default plan", map[string]interface{}{
			"error": err.Error(),
		})
		raw = ""
	}

	plan := defaultPlan(requirements)
	if raw == "" {
		return plan
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		p.logger.Warn("PLANNER", "Failed to parse plan JSON, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return plan
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return plan
	}

	// Shallow merge: each field is replaced only when present and list-shaped.
	if components, ok := obj["components"].([]interface{}); ok {
		plan.Components = components
	}
	if queries, ok := obj["search_queries"].([]interface{}); ok {
		plan.SearchQueries = queries
	}

	return plan
}

func defaultPlan(requirements string) *Plan {
	return &Plan{
		Components: []interface{}{
			map[string]interface{}{
				"name":        "main_module",
				"description": requirements,
				"priority":    1,
			},
		},
		SearchQueries: []interface{}{requirements},
	}
}

func (p *Planner) composePrompt(requirements, projectType string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a senior software architect helping another agent generate code.\n")
	prompt.WriteString("Given a user requirement and a project type, break the work into a small set ")
	prompt.WriteString("of concrete code components and KB search hints.\n\n")
	prompt.WriteString("Return JSON with this shape ONLY:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"components\": [\n")
	prompt.WriteString("    {\"name\": \"...\", \"description\": \"...\", \"priority\": 1}\n")
	prompt.WriteString("  ],\n")
	prompt.WriteString("  \"search_queries\": [\"...\", \"...\"]\n")
	prompt.WriteString("}\n\n")
	prompt.WriteString(fmt.Sprintf("PROJECT_TYPE: %s\n", projectType))
	prompt.WriteString(fmt.Sprintf("REQUIREMENTS:\n%s\n", requirements))

	return prompt.String()
}
