package otel

import (
	"context"

	"github.com/arcline/textsweep/pkg/engine"

	"go.opentelemetry.io/otel"
)

const instrumentationName = "github.com/arcline/textsweep"

type Engine interface {
	Observable
	engine.Engine
}

type Observable interface {
	otelSetup()
}

type observableEngine struct {
	engineType string

	engine engine.Engine
}

// NewEngine wraps an engine so that every extraction runs inside a
// trace span named after the engine type.
func NewEngine(engineType string, e engine.Engine) Engine {
	return &observableEngine{
		engineType: engineType,

		engine: e,
	}
}

func (e *observableEngine) otelSetup() {
}

func (e *observableEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "extract "+e.engineType)
	defer span.End()

	return e.engine.ExtractText(ctx, imagePath)
}

func (e *observableEngine) Validate(ctx context.Context) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "validate "+e.engineType)
	defer span.End()

	return e.engine.Validate(ctx)
}
