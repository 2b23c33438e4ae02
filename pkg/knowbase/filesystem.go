package knowbase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemSource reads KB documents from a local projects directory,
// one "{project}.json" per project. Used by the local deployment mode.
type FilesystemSource struct {
	dir string
}

var _ KnowledgeSource = &FilesystemSource{}

func NewFilesystemSource(dir string) *FilesystemSource {
	return &FilesystemSource{dir: dir}
}

func (s *FilesystemSource) FetchProject(_ context.Context, key string) (*Project, error) {
	path := filepath.Join(s.dir, key+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("read KB file %s: %w", path, err)
	}

	return ParseProject(key, data)
}
