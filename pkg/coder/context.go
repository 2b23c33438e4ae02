package coder

import (
	"context"
	"strings"
	"unicode"

	"ai-coderagent-be/internal/pkg/logger"
	"ai-coderagent-be/pkg/coder/tribal"
	"ai-coderagent-be/pkg/knowbase"
	"ai-coderagent-be/pkg/llm"
)

const historyLimit = 10

// HistoryStore supplies recent conversation messages for a session.
type HistoryStore interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]llm.Message, error)
}

// Context is the bundle every generation runs against.
type Context struct {
	Project             *knowbase.Project
	CodeSections        []knowbase.Section
	TribalKB            map[string]interface{}
	ConversationHistory string
}

// ContextLoader consolidates KB document, code sections, tribal knowledge and
// conversation history for one generation.
type ContextLoader struct {
	source  knowbase.KnowledgeSource
	tribal  *tribal.Loader
	history HistoryStore
	logger  logger.ILogger
}

func NewContextLoader(source knowbase.KnowledgeSource, tribalLoader *tribal.Loader, history HistoryStore, log logger.ILogger) *ContextLoader {
	return &ContextLoader{
		source:  source,
		tribal:  tribalLoader,
		history: history,
		logger:  log,
	}
}

// Load fetches the KB document by key and assembles the context. Fetch and
// decode failures propagate; a missing document surfaces as
// knowbase.ErrProjectNotFound.
func (l *ContextLoader) Load(ctx context.Context, kbKey, projectType, sessionID string) (*Context, error) {
	project, err := l.source.FetchProject(ctx, kbKey)
	if err != nil {
		return nil, err
	}
	return l.LoadWithProject(ctx, project, projectType, sessionID), nil
}

// LoadWithProject assembles the context around an already-fetched KB document.
func (l *ContextLoader) LoadWithProject(ctx context.Context, project *knowbase.Project, projectType, sessionID string) *Context {
	allSections := knowbase.FlattenSections(project.Raw)

	// Prefer Code artifact sections as exemplars; fall back to all sections
	// so a non-empty KB never yields an empty exemplar pool.
	var codeSections []knowbase.Section
	for _, entry := range allSections {
		if strings.EqualFold(entry.ArtifactName, "code") {
			codeSections = append(codeSections, entry)
		}
	}
	if len(codeSections) == 0 {
		codeSections = allSections
	}

	return &Context{
		Project:             project,
		CodeSections:        codeSections,
		TribalKB:            l.tribal.Load(projectType),
		ConversationHistory: l.formatHistory(ctx, sessionID),
	}
}

// formatHistory renders the most recent messages as "{Role}: {content}"
// lines. Any retrieval failure is swallowed: history is optional context.
func (l *ContextLoader) formatHistory(ctx context.Context, sessionID string) string {
	if sessionID == "" || l.history == nil {
		return ""
	}

	messages, err := l.history.Recent(ctx, sessionID, historyLimit)
	if err != nil {
		l.logger.Warn("CONTEXT", "Failed to load history for session", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return ""
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, capitalize(msg.Role)+": "+msg.Content)
	}
	return strings.Join(parts, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
