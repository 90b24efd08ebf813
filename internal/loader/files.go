package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/simfra/lingod/internal/model"
)

// Files serves lookups from the generated snapshot files instead of the
// database. Every call re-reads the locale's file; deployments that want
// caching use the database loader.
type Files struct {
	dir string
}

var _ Source = (*Files)(nil)

// NewFiles returns a Source reading <dir>/<locale>.json snapshot files.
func NewFiles(dir string) *Files {
	return &Files{dir: dir}
}

// Load reads the locale's snapshot file and returns the requested group's
// mapping. A missing file or an unknown group yields an empty map.
func (f *Files) Load(_ context.Context, locale, group string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, locale+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot for %s: %w", locale, err)
	}

	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parse snapshot for %s: %w", locale, err)
	}

	items := make(map[string]string)
	for key, value := range flat {
		g, item := model.SplitKey(key)
		if g == group {
			items[item] = value
		}
	}
	return items, nil
}
