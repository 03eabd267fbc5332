package ports

import (
	"context"

	"github.com/bft-labs/frdsource/internal/domain"
)

// ProgressRepository persists conversion progress.
type ProgressRepository interface {
	// Load returns the saved progress, or an empty Progress if none exists.
	Load(ctx context.Context) (domain.Progress, error)

	// Save replaces the saved progress atomically.
	Save(ctx context.Context, p domain.Progress) error
}
