package tribal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func writeKB(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	loader := NewLoader(t.TempDir(), nopLogger{})

	kb := loader.Load("unknown_type")

	assert.NotNil(t, kb)
	assert.Empty(t, kb)
}

func TestLoadEmptyTypeYieldsEmpty(t *testing.T) {
	loader := NewLoader(t.TempDir(), nopLogger{})

	assert.Empty(t, loader.Load(""))
	assert.Empty(t, loader.Load("   "))
}

func TestLoadInvalidJSONYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "python.json", "{not json")
	loader := NewLoader(dir, nopLogger{})

	assert.Empty(t, loader.Load("python"))
}

func TestLoadNonObjectYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "python.json", `["a", "b"]`)
	loader := NewLoader(dir, nopLogger{})

	assert.Empty(t, loader.Load("python"))
}

func TestLoadNormalizesProjectType(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "python.json", `{"style": "pep8"}`)
	loader := NewLoader(dir, nopLogger{})

	kb := loader.Load("  Python ")

	assert.Equal(t, "pep8", kb["style"])
}

func TestLoadMemoizesUntilInvalidated(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "go.json", `{"version": "one"}`)
	loader := NewLoader(dir, nopLogger{})

	assert.Equal(t, "one", loader.Load("go")["version"])

	// The file changes on disk but the cached mapping wins.
	writeKB(t, dir, "go.json", `{"version": "two"}`)
	assert.Equal(t, "one", loader.Load("go")["version"])

	loader.Invalidate("go")
	assert.Equal(t, "two", loader.Load("go")["version"])
}

func TestLoadReturnsTheCachedMappingItself(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "go.json", `{"version": "one"}`)
	loader := NewLoader(dir, nopLogger{})

	first := loader.Load("go")
	first["marker"] = true

	// Same mapping instance, not a re-read or a copy.
	second := loader.Load("go")
	assert.Equal(t, true, second["marker"])
}

func TestReloadForcesFreshRead(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "go.json", `{"version": "one"}`)
	loader := NewLoader(dir, nopLogger{})

	loader.Load("go")
	writeKB(t, dir, "go.json", `{"version": "two"}`)

	assert.Equal(t, "two", loader.Reload("go")["version"])
}

func TestMissesAreCachedToo(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, nopLogger{})

	assert.Empty(t, loader.Load("rust"))

	// A file appearing later is not observed without an explicit reload.
	writeKB(t, dir, "rust.json", `{"style": "clippy"}`)
	assert.Empty(t, loader.Load("rust"))
	assert.Equal(t, "clippy", loader.Reload("rust")["style"])
}

func TestCapacityEvictsOldestEntry(t *testing.T) {
	dir := t.TempDir()
	writeKB(t, dir, "a.json", `{"v": "a1"}`)
	loader := NewLoader(dir, nopLogger{})
	loader.capacity = 2

	loader.Load("a")
	loader.Load("b")
	loader.Load("c") // evicts "a"

	// A re-read of "a" sees the new file contents.
	writeKB(t, dir, "a.json", `{"v": "a2"}`)
	assert.Equal(t, "a2", loader.Load("a")["v"])
}
