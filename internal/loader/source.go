package loader

import (
	"path/filepath"
	"sync"

	"github.com/napolitain/solver-wos/internal/models"
)

// Dir serves tables from a data directory, loading each file once
type Dir struct {
	root string

	mu     sync.Mutex
	tables map[string]*models.Table
}

// NewDir creates a table source rooted at dataDir
func NewDir(dataDir string) *Dir {
	return &Dir{root: dataDir, tables: make(map[string]*models.Table)}
}

// Table loads the table for a catalog entry. Failures are not cached so a
// file added later is picked up on the next call.
func (d *Dir) Table(e Entry) (*models.Table, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.tables[e.File]; ok {
		return t, nil
	}

	t, err := LoadTable(filepath.Join(d.root, e.File))
	if err != nil {
		return nil, err
	}
	t.Name = e.Key
	d.tables[e.File] = t
	return t, nil
}
