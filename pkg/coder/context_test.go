package coder

import (
	"context"
	"errors"
	"testing"

	"ai-coderagent-be/pkg/coder/tribal"
	"ai-coderagent-be/pkg/knowbase"
	"ai-coderagent-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	project *knowbase.Project
	err     error
}

func (s *stubSource) FetchProject(_ context.Context, _ string) (*knowbase.Project, error) {
	return s.project, s.err
}

type stubHistory struct {
	messages []llm.Message
	err      error
}

func (s *stubHistory) Recent(_ context.Context, _ string, _ int) ([]llm.Message, error) {
	return s.messages, s.err
}

func nestedProject(artifacts ...map[string]interface{}) *knowbase.Project {
	raw := make([]interface{}, len(artifacts))
	for i, a := range artifacts {
		raw[i] = a
	}
	return &knowbase.Project{Name: "demo", Raw: map[string]interface{}{"artifacts": raw}}
}

func artifact(name string, sectionNames ...string) map[string]interface{} {
	sections := make([]interface{}, len(sectionNames))
	for i, s := range sectionNames {
		sections[i] = map[string]interface{}{"section_name": s, "description": "d"}
	}
	return map[string]interface{}{
		"artifact_name": name,
		"documents": []interface{}{
			map[string]interface{}{"document_name": "doc", "sections": sections},
		},
	}
}

func TestLoadPrefersCodeArtifactSections(t *testing.T) {
	source := &stubSource{project: nestedProject(
		artifact("Design", "arch"),
		artifact("Code", "handler", "model"),
	)}
	loader := NewContextLoader(source, tribal.NewLoader(t.TempDir(), nopLogger{}), &stubHistory{}, nopLogger{})

	got, err := loader.Load(context.Background(), "demo", "python", "")

	assert.NoError(t, err)
	assert.Len(t, got.CodeSections, 2)
	assert.Equal(t, "handler", got.CodeSections[0].SectionName)
}

func TestLoadFallsBackToAllSections(t *testing.T) {
	source := &stubSource{project: nestedProject(
		artifact("Design", "arch"),
		artifact("Requirements", "stories"),
	)}
	loader := NewContextLoader(source, tribal.NewLoader(t.TempDir(), nopLogger{}), &stubHistory{}, nopLogger{})

	got, err := loader.Load(context.Background(), "demo", "python", "")

	assert.NoError(t, err)
	assert.Len(t, got.CodeSections, 2)
}

func TestLoadPropagatesFetchError(t *testing.T) {
	source := &stubSource{err: knowbase.ErrProjectNotFound}
	loader := NewContextLoader(source, tribal.NewLoader(t.TempDir(), nopLogger{}), &stubHistory{}, nopLogger{})

	_, err := loader.Load(context.Background(), "demo", "python", "")

	assert.ErrorIs(t, err, knowbase.ErrProjectNotFound)
}

func TestLoadFormatsHistoryWithCapitalizedRoles(t *testing.T) {
	source := &stubSource{project: nestedProject(artifact("Code", "handler"))}
	history := &stubHistory{messages: []llm.Message{
		{Role: "user", Content: "add auth"},
		{Role: "assistant", Content: "done"},
	}}
	loader := NewContextLoader(source, tribal.NewLoader(t.TempDir(), nopLogger{}), history, nopLogger{})

	got, err := loader.Load(context.Background(), "demo", "python", "session-1")

	assert.NoError(t, err)
	assert.Equal(t, "User: add auth\nAssistant: done", got.ConversationHistory)
}

func TestLoadSkipsHistoryWithoutSession(t *testing.T) {
	source := &stubSource{project: nestedProject(artifact("Code", "handler"))}
	history := &stubHistory{err: errors.New("should not be called")}
	loader := NewContextLoader(source, tribal.NewLoader(t.TempDir(), nopLogger{}), history, nopLogger{})

	got, err := loader.Load(context.Background(), "demo", "python", "")

	assert.NoError(t, err)
	assert.Empty(t, got.ConversationHistory)
}

func TestLoadSwallowsHistoryErrors(t *testing.T) {
	source := &stubSource{project: nestedProject(artifact("Code", "handler"))}
	history := &stubHistory{err: errors.New("db offline")}
	loader := NewContextLoader(source, tribal.NewLoader(t.TempDir(), nopLogger{}), history, nopLogger{})

	got, err := loader.Load(context.Background(), "demo", "python", "session-1")

	assert.NoError(t, err)
	assert.Empty(t, got.ConversationHistory)
}
