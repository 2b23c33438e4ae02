package knowbase

import (
	"context"
	"errors"
)

// ErrProjectNotFound is returned when no KB document exists for the requested
// project. Entry points translate it into a 404.
var ErrProjectNotFound = errors.New("project knowledge base not found")

// KnowledgeSource abstracts where KB documents live. The remote deployment
// reads an object-storage bucket; the local deployment reads a directory.
type KnowledgeSource interface {
	// FetchProject loads and decodes the KB document stored under key.
	// The key is the project's KB object name without the ".json" suffix.
	FetchProject(ctx context.Context, key string) (*Project, error)
}
