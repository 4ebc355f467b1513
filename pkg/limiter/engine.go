package limiter

import (
	"context"

	"github.com/arcline/textsweep/pkg/engine"

	"golang.org/x/time/rate"
)

type Engine interface {
	Limiter
	engine.Engine
}

type Limiter interface {
	limiterSetup()
}

type limitedEngine struct {
	limiter *rate.Limiter
	engine  engine.Engine
}

// NewEngine wraps an engine so that extractions wait on the given rate
// limiter. A nil limiter passes calls through unchanged.
func NewEngine(l *rate.Limiter, e engine.Engine) Engine {
	return &limitedEngine{
		limiter: l,
		engine:  e,
	}
}

func (e *limitedEngine) limiterSetup() {
}

func (e *limitedEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if e.limiter != nil {
		e.limiter.Wait(ctx)
	}

	return e.engine.ExtractText(ctx, imagePath)
}

func (e *limitedEngine) Validate(ctx context.Context) error {
	return e.engine.Validate(ctx)
}
