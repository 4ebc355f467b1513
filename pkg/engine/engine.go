package engine

import (
	"context"
)

// Engine extracts text from a single image file. Implementations are
// selected by type tag through the factory and may cache heavy internal
// state lazily, as long as first use stays idempotent.
type Engine interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
	Validate(ctx context.Context) error
}
