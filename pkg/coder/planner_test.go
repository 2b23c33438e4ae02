package coder

import (
	"context"
	"errors"
	"testing"

	"ai-coderagent-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fakeProvider answers Generate calls from a scripted queue.
type fakeProvider struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	idx := len(f.prompts) - 1
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	response := ""
	if idx < len(f.responses) {
		response = f.responses[idx]
	}
	return response, err
}

func assertDefaultPlan(t *testing.T, plan *Plan, requirements string) {
	t.Helper()
	assert.Len(t, plan.Components, 1)
	component := plan.Components[0].(map[string]interface{})
	assert.Equal(t, "main_module", component["name"])
	assert.Equal(t, requirements, component["description"])
	assert.Equal(t, []interface{}{requirements}, plan.SearchQueries)
}

func TestPlanFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{errs: []error{errors.New("model down")}}
	planner := NewPlanner(provider, nopLogger{})

	plan := planner.Plan(context.Background(), "build a parser", "python")

	assertDefaultPlan(t, plan, "build a parser")
}

func TestPlanFallsBackOnUnparseableResponse(t *testing.T) {
	provider := &fakeProvider{responses: []string{"sorry, I can't help with JSON today"}}
	planner := NewPlanner(provider, nopLogger{})

	plan := planner.Plan(context.Background(), "build a parser", "python")

	assertDefaultPlan(t, plan, "build a parser")
}

func TestPlanMergesOnlyListShapedFields(t *testing.T) {
	// components is present but not a list: keep the default components,
	// merge only search_queries.
	provider := &fakeProvider{responses: []string{
		`{"components": "oops", "search_queries": ["parser grammar", "tokenizer"]}`,
	}}
	planner := NewPlanner(provider, nopLogger{})

	plan := planner.Plan(context.Background(), "build a parser", "python")

	assert.Len(t, plan.Components, 1)
	component := plan.Components[0].(map[string]interface{})
	assert.Equal(t, "main_module", component["name"])
	assert.Equal(t, []interface{}{"parser grammar", "tokenizer"}, plan.SearchQueries)
}

func TestPlanKeepsDefaultQueriesWhenAbsent(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"components": [{"name": "lexer", "priority": 1}]}`,
	}}
	planner := NewPlanner(provider, nopLogger{})

	plan := planner.Plan(context.Background(), "build a parser", "python")

	assert.Len(t, plan.Components, 1)
	component := plan.Components[0].(map[string]interface{})
	assert.Equal(t, "lexer", component["name"])
	assert.Equal(t, []interface{}{"build a parser"}, plan.SearchQueries)
}

func TestPlanExtractsJSONFromChattyResponse(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		"Sure! Here is your plan:\n```json\n{\"components\": [{\"name\": \"api\"}], \"search_queries\": [\"rest\"]}\n```\nHope it helps.",
	}}
	planner := NewPlanner(provider, nopLogger{})

	plan := planner.Plan(context.Background(), "build an API", "go")

	component := plan.Components[0].(map[string]interface{})
	assert.Equal(t, "api", component["name"])
	assert.Equal(t, []interface{}{"rest"}, plan.SearchQueries)
}

func TestPlanPromptCarriesRequirementAndType(t *testing.T) {
	provider := &fakeProvider{responses: []string{"{}"}}
	planner := NewPlanner(provider, nopLogger{})

	planner.Plan(context.Background(), "build a parser", "python")

	assert.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "PROJECT_TYPE: python")
	assert.Contains(t, provider.prompts[0], "build a parser")
}
