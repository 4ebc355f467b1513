package passthrough

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/arcline/textsweep/pkg/engine"
)

var _ engine.Engine = &Engine{}

// Engine is a stub that performs no real extraction. It returns
// deterministic placeholder text, which makes it useful for exercising
// the batch and pipeline machinery without an extraction backend.
type Engine struct {
	logger *slog.Logger
}

func New(options ...Option) (*Engine, error) {
	e := &Engine{
		logger: slog.Default(),
	}

	for _, option := range options {
		option(e)
	}

	return e, nil
}

func (e *Engine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	name := filepath.Base(imagePath)

	e.logger.Debug("passthrough extraction", "image", name)

	return "Extracted text from " + name + "\n", nil
}

func (e *Engine) Validate(ctx context.Context) error {
	return nil
}
