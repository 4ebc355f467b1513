package tesseract

import (
	"context"
	"errors"
	"os"

	"github.com/arcline/textsweep/pkg/engine"

	"github.com/otiai10/gosseract/v2"
)

var _ engine.Engine = &Engine{}

// Engine performs local OCR through the tesseract library. A client is
// created per extraction since gosseract clients are not safe for reuse
// across images with different settings.
type Engine struct {
	languages []string
}

func New(options ...Option) (*Engine, error) {
	e := &Engine{
		languages: []string{"eng"},
	}

	for _, option := range options {
		option(e)
	}

	return e, nil
}

func (e *Engine) Validate(ctx context.Context) error {
	if len(e.languages) == 0 {
		return &engine.ConfigurationError{Engine: "tesseract", Err: errors.New("at least one language is required")}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return &engine.ConfigurationError{Engine: "tesseract", Err: err}
	}

	return nil
}

func (e *Engine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	if err := client.SetImage(imagePath); err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	text, err := client.Text()

	if err != nil {
		return "", &engine.ExtractionError{Path: imagePath, Err: err}
	}

	return text, nil
}
