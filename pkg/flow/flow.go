package flow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/arcline/textsweep/pkg/batch"
	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/engine/factory"
	"github.com/arcline/textsweep/pkg/limiter"
	"github.com/arcline/textsweep/pkg/otel"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Options configures one pipeline run.
type Options struct {
	ImageDir  string
	OutputDir string

	EngineType string
	Engine     EngineOptions

	MaxRetries  *int
	Extensions  []string
	BackoffUnit time.Duration

	Logger *slog.Logger
}

// Flow sequences a run through five stages: initialize, createEngine,
// discover, process, report. Stages execute strictly in order over one
// State; a stage failure aborts the run, there is no re-entry.
type Flow struct {
	options Options

	logger *slog.Logger

	state  *State
	engine engine.Engine
}

func New(options Options) *Flow {
	logger := options.Logger

	if logger == nil {
		logger = slog.Default()
	}

	return &Flow{
		options: options,

		logger: logger,
	}
}

// Run executes the pipeline once and returns the terminal report. A
// *ValidationError or *engine.ConfigurationError means the run aborted
// before any image was processed.
func (f *Flow) Run(ctx context.Context) (*batch.Report, error) {
	f.state = &State{
		RunID: uuid.NewString(),

		ImageDir:  f.options.ImageDir,
		OutputDir: f.options.OutputDir,

		EngineType:   f.options.EngineType,
		EngineConfig: f.options.Engine,
	}

	f.logger.Info("starting pipeline run", "run_id", f.state.RunID, "engine", f.state.EngineType, "input", f.state.ImageDir)

	if err := f.initialize(ctx); err != nil {
		return nil, err
	}

	if err := f.createEngine(ctx); err != nil {
		return nil, err
	}

	if err := f.discover(ctx); err != nil {
		return nil, err
	}

	if err := f.process(ctx); err != nil {
		return nil, err
	}

	return f.report(), nil
}

func (f *Flow) extensions() []string {
	if len(f.options.Extensions) > 0 {
		return f.options.Extensions
	}

	return batch.DefaultExtensions
}

// initialize validates the run inputs before anything is constructed.
func (f *Flow) initialize(ctx context.Context) error {
	info, err := os.Stat(f.state.ImageDir)

	if err != nil {
		return &ValidationError{Reason: "image directory does not exist: " + f.state.ImageDir}
	}

	if !info.IsDir() {
		return &ValidationError{Reason: "image path is not a directory: " + f.state.ImageDir}
	}

	if !slices.Contains(factory.SupportedTypes(), strings.ToLower(f.state.EngineType)) {
		return &ValidationError{Reason: fmt.Sprintf("invalid engine type %q, supported types: %s", f.state.EngineType, strings.Join(factory.SupportedTypes(), ", "))}
	}

	images, err := batch.Discover(f.state.ImageDir, f.extensions())

	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}

	if len(images) == 0 {
		return &ValidationError{Reason: fmt.Sprintf("no images found in %s (supported extensions: %s)", f.state.ImageDir, strings.Join(f.extensions(), ", "))}
	}

	if info, err := os.Stat(f.state.OutputDir); err == nil && !info.IsDir() {
		return &ValidationError{Reason: "output path exists but is not a directory: " + f.state.OutputDir}
	}

	f.logger.Info("validation complete", "run_id", f.state.RunID, "images", len(images))

	return nil
}

// createEngine matches the raw payload to its typed config variant,
// constructs the engine through the factory and validates it.
func (f *Flow) createEngine(ctx context.Context) error {
	cfg, err := buildEngineConfig(f.state.EngineType, f.state.EngineConfig)

	if err != nil {
		return &engine.ConfigurationError{Engine: f.state.EngineType, Err: err}
	}

	e, err := factory.New(f.state.EngineType, cfg)

	if err != nil {
		return &engine.ConfigurationError{Engine: f.state.EngineType, Err: err}
	}

	if f.state.EngineConfig.Limit != nil {
		limit := *f.state.EngineConfig.Limit

		e = limiter.NewEngine(rate.NewLimiter(rate.Limit(limit), limit), e)
	}

	e = otel.NewEngine(f.state.EngineType, e)

	if err := e.Validate(ctx); err != nil {
		if _, ok := err.(*engine.ConfigurationError); ok {
			return err
		}

		return &engine.ConfigurationError{Engine: f.state.EngineType, Err: err}
	}

	f.engine = e

	f.logger.Info("engine ready", "run_id", f.state.RunID, "engine", f.state.EngineType)

	return nil
}

// discover records the batch size into state.
func (f *Flow) discover(ctx context.Context) error {
	images, err := batch.Discover(f.state.ImageDir, f.extensions())

	if err != nil {
		return err
	}

	f.state.TotalImages = len(images)

	f.logger.Info("discovered images", "run_id", f.state.RunID, "images", f.state.TotalImages)

	return nil
}

// process runs the batch processor and copies its results into state.
// Item-level failures are recorded, not raised.
func (f *Flow) process(ctx context.Context) error {
	options := []batch.Option{
		batch.WithExtensions(f.extensions()...),
		batch.WithLogger(f.logger),
	}

	if f.options.MaxRetries != nil {
		options = append(options, batch.WithMaxRetries(*f.options.MaxRetries))
	}

	if f.options.BackoffUnit > 0 {
		options = append(options, batch.WithBackoffUnit(f.options.BackoffUnit))
	}

	processor := batch.NewProcessor(f.engine, f.state.OutputDir, options...)

	report, err := processor.Process(ctx, f.state.ImageDir)

	if err != nil {
		return err
	}

	f.state.ProcessedImages = report.TotalImages
	f.state.Successful = report.Successful
	f.state.Failed = report.Failed
	f.state.Results = report.Results

	return nil
}

// report reconstructs the terminal report from state. The duration is
// the sum of per-item durations.
func (f *Flow) report() *batch.Report {
	var duration time.Duration

	for _, result := range f.state.Results {
		duration += result.Duration
	}

	report := &batch.Report{
		TotalImages: f.state.TotalImages,
		Successful:  f.state.Successful,
		Failed:      f.state.Failed,

		Duration: duration,

		Results: f.state.Results,
	}

	f.logger.Info("pipeline run complete",
		"run_id", f.state.RunID,
		"total", report.TotalImages,
		"successful", report.Successful,
		"failed", report.Failed,
		"success_rate", report.SuccessRate(),
		"duration", report.Duration)

	return report
}

func buildEngineConfig(engineType string, options EngineOptions) (engine.Config, error) {
	switch strings.ToLower(engineType) {
	case "api":
		return engine.APIConfig{
			URL:   options.URL,
			Token: options.Token,

			Timeout:  options.Timeout,
			Insecure: options.Insecure,
		}, nil

	case "docling":
		return engine.DoclingConfig{
			URL:   options.URL,
			Token: options.Token,

			Timeout: options.Timeout,
		}, nil

	case "llm":
		return engine.LLMConfig{
			Model: options.Model,

			URL:   options.URL,
			Token: options.Token,

			Temperature: options.Temperature,
			MaxTokens:   options.MaxTokens,
		}, nil

	case "passthrough":
		return engine.PassthroughConfig{}, nil

	case "tesseract":
		return engine.TesseractConfig{
			Languages: options.Languages,
		}, nil

	default:
		return nil, fmt.Errorf("unknown engine type %q", engineType)
	}
}
