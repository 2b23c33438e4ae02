package knowbase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilesystemSourceFetchesProjectByName(t *testing.T) {
	dir := t.TempDir()
	payload := `{"artifacts": [{"artifact_name": "Code", "documents": []}]}`
	if err := os.WriteFile(filepath.Join(dir, "demo.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	source := NewFilesystemSource(dir)
	project, err := source.FetchProject(context.Background(), "demo")

	assert.NoError(t, err)
	assert.Equal(t, "demo", project.Name)
	assert.Contains(t, project.Raw, "artifacts")
}

func TestFilesystemSourceMissingFileIsNotFound(t *testing.T) {
	source := NewFilesystemSource(t.TempDir())

	_, err := source.FetchProject(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestFilesystemSourceInvalidPayloadIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "demo.json"), []byte(`[1]`), 0o644); err != nil {
		t.Fatal(err)
	}

	source := NewFilesystemSource(dir)
	_, err := source.FetchProject(context.Background(), "demo")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProjectNotFound)
}
