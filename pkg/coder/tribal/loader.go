package tribal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ai-coderagent-be/internal/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// DefaultCapacity bounds how many distinct project types stay memoized.
const DefaultCapacity = 32

// Loader reads per-project-type tribal knowledge from "{type}.json" files.
// Results are memoized in a bounded FIFO cache; file edits are not observed
// until Invalidate/Reload is called (or the process restarts).
type Loader struct {
	dir      string
	capacity int
	logger   logger.ILogger

	mu    sync.Mutex
	cache *cache.Cache
	order []string
}

func NewLoader(dir string, log logger.ILogger) *Loader {
	return &Loader{
		dir:      dir,
		capacity: DefaultCapacity,
		logger:   log,
		cache:    cache.New(cache.NoExpiration, 0),
	}
}

// Load returns the tribal knowledge mapping for a project type. Missing or
// invalid files yield an empty mapping, never an error; the generator falls
// back to generic best practices.
func (l *Loader) Load(projectType string) map[string]interface{} {
	normalized := strings.ToLower(strings.TrimSpace(projectType))
	if normalized == "" {
		return map[string]interface{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, found := l.cache.Get(normalized); found {
		return cached.(map[string]interface{})
	}

	kb := l.readFile(normalized)
	l.store(normalized, kb)
	return kb
}

// Invalidate drops the cached entry for a project type so the next Load
// re-reads the file.
func (l *Loader) Invalidate(projectType string) {
	normalized := strings.ToLower(strings.TrimSpace(projectType))

	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache.Delete(normalized)
	for i, k := range l.order {
		if k == normalized {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Reload forces a fresh read and returns the new mapping.
func (l *Loader) Reload(projectType string) map[string]interface{} {
	l.Invalidate(projectType)
	return l.Load(projectType)
}

func (l *Loader) readFile(normalized string) map[string]interface{} {
	path := filepath.Join(l.dir, normalized+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Info("TRIBAL_KB", "No tribal KB found for project type", map[string]interface{}{
				"project_type": normalized,
				"path":         path,
			})
		} else {
			l.logger.Error("TRIBAL_KB", "Failed to read tribal KB file", map[string]interface{}{
				"project_type": normalized,
				"error":        err.Error(),
			})
		}
		return map[string]interface{}{}
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		l.logger.Error("TRIBAL_KB", "Failed to parse tribal KB file", map[string]interface{}{
			"project_type": normalized,
			"error":        err.Error(),
		})
		return map[string]interface{}{}
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		l.logger.Warn("TRIBAL_KB", "Tribal KB file is not a JSON object", map[string]interface{}{
			"project_type": normalized,
		})
		return map[string]interface{}{}
	}

	return obj
}

// store memoizes under FIFO eviction; caller holds l.mu.
func (l *Loader) store(normalized string, kb map[string]interface{}) {
	if len(l.order) >= l.capacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		l.cache.Delete(oldest)
	}
	l.cache.Set(normalized, kb, cache.NoExpiration)
	l.order = append(l.order, normalized)
}
