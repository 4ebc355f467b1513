package batch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arcline/textsweep/pkg/engine"
)

// DefaultExtensions are the image extensions recognized when none are
// configured. Matching is case-insensitive.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".bmp"}

const DefaultMaxRetries = 3

// Processor drives text extraction for a batch of images through an
// injected engine, retrying each image with exponential backoff. It
// keeps no state between Process calls.
type Processor struct {
	engine engine.Engine

	outputDir  string
	maxRetries int
	extensions []string

	backoffUnit time.Duration

	logger *slog.Logger
}

func NewProcessor(e engine.Engine, outputDir string, options ...Option) *Processor {
	p := &Processor{
		engine: e,

		outputDir:  outputDir,
		maxRetries: DefaultMaxRetries,
		extensions: DefaultExtensions,

		backoffUnit: time.Second,

		logger: slog.Default(),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Process extracts text from every recognized image directly inside
// imageDir, in sorted filename order, and returns the aggregate report.
func (p *Processor) Process(ctx context.Context, imageDir string) (*Report, error) {
	start := time.Now()

	if err := EnsureDirectory(p.outputDir); err != nil {
		return nil, err
	}

	images, err := Discover(imageDir, p.extensions)

	if err != nil {
		return nil, err
	}

	p.logger.Info("starting batch", "dir", imageDir, "images", len(images))

	report := &Report{
		TotalImages: len(images),

		Results: make([]Result, 0, len(images)),
	}

	for i, imagePath := range images {
		p.logger.Info("processing image", "image", filepath.Base(imagePath), "index", i+1, "total", len(images))

		result := p.ProcessImage(ctx, imagePath)
		report.Results = append(report.Results, result)

		if result.Success {
			report.Successful++

			p.logger.Info("image processed", "image", filepath.Base(imagePath), "attempts", result.Attempts, "duration", result.Duration)
		} else {
			report.Failed++

			p.logger.Error("image failed", "image", filepath.Base(imagePath), "attempts", result.Attempts, "error", result.Error)
		}
	}

	report.Duration = time.Since(start)

	p.logger.Info("batch complete", "successful", report.Successful, "failed", report.Failed, "duration", report.Duration)

	return report, nil
}

// ProcessImage extracts text from one image, retrying up to the
// configured maximum. Attempts are numbered from 1; the wait before
// attempt n+1 is 2^(n-1) backoff units. Item failures are recorded in
// the result, never propagated.
func (p *Processor) ProcessImage(ctx context.Context, imagePath string) Result {
	start := time.Now()

	var lastErr error

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		text, err := p.engine.ExtractText(ctx, imagePath)

		if err == nil {
			outputPath := filepath.Join(p.outputDir, OutputFilename(imagePath, ".txt"))

			err = os.WriteFile(outputPath, []byte(text), 0o644)

			if err == nil {
				return Result{
					ImagePath: imagePath,
					Success:   true,

					OutputPath: outputPath,

					Attempts: attempt,
					Duration: time.Since(start),
				}
			}
		}

		lastErr = err

		var extractionErr *engine.ExtractionError

		if errors.As(err, &extractionErr) {
			p.logger.Warn("extraction failed", "image", filepath.Base(imagePath), "attempt", attempt, "max_retries", p.maxRetries, "error", err)
		} else {
			// Unexpected failures retry like extraction failures, with
			// the original error preserved in the result.
			p.logger.Error("unexpected failure", "image", filepath.Base(imagePath), "attempt", attempt, "max_retries", p.maxRetries, "error", err)
		}

		if attempt < p.maxRetries {
			wait := p.backoff(attempt)

			p.logger.Warn("retrying", "image", filepath.Base(imagePath), "wait", wait)

			time.Sleep(wait)
		}
	}

	message := "unknown error"

	if lastErr != nil {
		message = lastErr.Error()
	}

	return Result{
		ImagePath: imagePath,

		Error: message,

		Attempts: p.maxRetries,
		Duration: time.Since(start),
	}
}

func (p *Processor) backoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * p.backoffUnit
}
