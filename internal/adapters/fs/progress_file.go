package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bft-labs/frdsource/internal/domain"
)

const progressFileName = "status.json"

// ProgressFileRepository implements ports.ProgressRepository using a JSON file.
type ProgressFileRepository struct {
	dir string
}

// NewProgressFileRepository creates a new ProgressFileRepository for the given directory.
func NewProgressFileRepository(dir string) *ProgressFileRepository {
	return &ProgressFileRepository{dir: dir}
}

// Load retrieves the last saved progress from disk.
// Returns empty progress and nil error if no status file exists.
func (r *ProgressFileRepository) Load(ctx context.Context) (domain.Progress, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Progress{}, nil
		}
		return domain.Progress{}, err
	}

	var p domain.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Progress{}, err
	}
	return p, nil
}

// Save persists progress atomically (temp file, then rename).
func (r *ProgressFileRepository) Save(ctx context.Context, p domain.Progress) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the status file.
func (r *ProgressFileRepository) Path() string {
	return filepath.Join(r.dir, progressFileName)
}
