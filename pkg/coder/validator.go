package coder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/pkg/llm"
)

// ValidationResult is the model's self-assessment verdict on generated code.
type ValidationResult struct {
	IsValid           bool     `json:"is_valid"`
	Errors            []string `json:"errors"`
	Warnings          []string `json:"warnings"`
	CompletenessScore float64  `json:"completeness_score"`
	Suggestions       []string `json:"suggestions"`
}

// validationPayload mirrors ValidationResult with pointer fields so absent
// keys can be told apart from zero values during normalization.
type validationPayload struct {
	IsValid           *bool    `json:"is_valid"`
	Errors            []string `json:"errors"`
	Warnings          []string `json:"warnings"`
	CompletenessScore *float64 `json:"completeness_score"`
	Suggestions       []string `json:"suggestions"`
}

// Validator runs a lightweight LLM-assisted quality check. It is best-effort
// by policy: when the check itself fails, the code is treated as unvalidated
// rather than invalid.
type Validator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewValidator(provider llm.LLMProvider, log logger.ILogger) *Validator {
	return &Validator{provider: provider, logger: log}
}

// Validate returns (is_valid, details). Empty code short-circuits without a
// model call.
func (v *Validator) Validate(ctx context.Context, code, projectType, requirements string) (bool, *ValidationResult) {
	if strings.TrimSpace(code) == "" {
		return false, &ValidationResult{
			IsValid:           false,
			Errors:            []string{"Code generation returned empty output"},
			Warnings:          []string{},
			CompletenessScore: 0.0,
			Suggestions:       []string{"Retry generation with simplified requirements"},
		}
	}

	raw, err := v.provider.Generate(ctx, v.composePrompt(code, projectType, requirements), llm.WithTemperature(0.1))
	if err != nil {
		v.logger.Warn("VALIDATOR", "Validation LLM call failed, returning optimistic default", map[string]interface{}{
			"error": err.Error(),
		})
		return true, optimisticResult("Validation step failed; treat code as unvalidated.")
	}

	var payload validationPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		v.logger.Warn("VALIDATOR", "Failed to parse validation JSON, using safe default", map[string]interface{}{
			"error": err.Error(),
		})
		return true, optimisticResult("Validation response was not parseable; treat as best-effort.")
	}

	result := normalizeVerdict(payload)
	return result.IsValid, result
}

// normalizeVerdict coerces the parsed payload; an absent is_valid defaults to
// true per the best-effort policy.
func normalizeVerdict(payload validationPayload) *ValidationResult {
	result := &ValidationResult{
		IsValid:     true,
		Errors:      payload.Errors,
		Warnings:    payload.Warnings,
		Suggestions: payload.Suggestions,
	}
	if payload.IsValid != nil {
		result.IsValid = *payload.IsValid
	}
	if payload.CompletenessScore != nil {
		result.CompletenessScore = *payload.CompletenessScore
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result
}

func optimisticResult(warning string) *ValidationResult {
	return &ValidationResult{
		IsValid:           true,
		Errors:            []string{},
		Warnings:          []string{warning},
		CompletenessScore: 0.7,
		Suggestions:       []string{},
	}
}

func (v *Validator) composePrompt(code, projectType, requirements string) string {
	var prompt strings.Builder

	prompt.WriteString("You are performing a quick quality check on generated code.\n")
	prompt.WriteString("Given the project type, the original requirements and the code, evaluate:\n")
	prompt.WriteString("- Does the code roughly satisfy the requirements?\n")
	prompt.WriteString("- Are there any obvious structural or logical problems?\n")
	prompt.WriteString("- Is the code appropriate for the project type?\n\n")
	prompt.WriteString("Respond ONLY in this JSON shape:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"is_valid\": true/false,\n")
	prompt.WriteString("  \"errors\": [\"...\"],\n")
	prompt.WriteString("  \"warnings\": [\"...\"],\n")
	prompt.WriteString("  \"completeness_score\": 0.0,\n")
	prompt.WriteString("  \"suggestions\": [\"...\"]\n")
	prompt.WriteString("}\n\n")
	prompt.WriteString(fmt.Sprintf("PROJECT_TYPE: %s\n\n", projectType))
	prompt.WriteString(fmt.Sprintf("REQUIREMENTS:\n%s\n\n", requirements))
	prompt.WriteString(fmt.Sprintf("CODE:\n%s\n", code))

	return prompt.String()
}
