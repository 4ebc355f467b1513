package factory

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/arcline/textsweep/pkg/engine"
	"github.com/arcline/textsweep/pkg/engine/api"
	"github.com/arcline/textsweep/pkg/engine/docling"
	"github.com/arcline/textsweep/pkg/engine/llm"
	"github.com/arcline/textsweep/pkg/engine/passthrough"
	"github.com/arcline/textsweep/pkg/engine/tesseract"
)

// SupportedTypes returns the recognized engine type tags in stable order.
func SupportedTypes() []string {
	return []string{"api", "docling", "llm", "passthrough", "tesseract"}
}

// New constructs the engine for the given type tag. The configuration
// variant must match the tag; it is passed through unmodified and not
// validated here. Callers run Engine.Validate separately.
func New(engineType string, config engine.Config) (engine.Engine, error) {
	switch strings.ToLower(engineType) {
	case "api":
		cfg, ok := config.(engine.APIConfig)

		if !ok {
			return nil, mismatchError(engineType, "engine.APIConfig", config)
		}

		return apiEngine(cfg)

	case "docling":
		cfg, ok := config.(engine.DoclingConfig)

		if !ok {
			return nil, mismatchError(engineType, "engine.DoclingConfig", config)
		}

		return doclingEngine(cfg)

	case "llm":
		cfg, ok := config.(engine.LLMConfig)

		if !ok {
			return nil, mismatchError(engineType, "engine.LLMConfig", config)
		}

		return llmEngine(cfg)

	case "passthrough":
		if _, ok := config.(engine.PassthroughConfig); !ok {
			return nil, mismatchError(engineType, "engine.PassthroughConfig", config)
		}

		return passthrough.New()

	case "tesseract":
		cfg, ok := config.(engine.TesseractConfig)

		if !ok {
			return nil, mismatchError(engineType, "engine.TesseractConfig", config)
		}

		return tesseract.New(tesseract.WithLanguages(cfg.Languages...))

	default:
		return nil, fmt.Errorf("unsupported engine type %q, supported types: %s", engineType, strings.Join(SupportedTypes(), ", "))
	}
}

func mismatchError(engineType, want string, got engine.Config) error {
	return fmt.Errorf("engine type %q requires %s, got %T", engineType, want, got)
}

func apiEngine(cfg engine.APIConfig) (engine.Engine, error) {
	var options []api.Option

	if cfg.Token != "" {
		options = append(options, api.WithToken(cfg.Token))
	}

	if cfg.Insecure {
		client := api.InsecureClient()
		client.Timeout = cfg.Timeout

		options = append(options, api.WithClient(client))
	} else if cfg.Timeout > 0 {
		options = append(options, api.WithClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return api.New(cfg.URL, options...)
}

func doclingEngine(cfg engine.DoclingConfig) (engine.Engine, error) {
	var options []docling.Option

	if cfg.Token != "" {
		options = append(options, docling.WithToken(cfg.Token))
	}

	if cfg.Timeout > 0 {
		options = append(options, docling.WithClient(&http.Client{Timeout: cfg.Timeout}))
	}

	return docling.New(cfg.URL, options...)
}

func llmEngine(cfg engine.LLMConfig) (engine.Engine, error) {
	var options []llm.Option

	if cfg.URL != "" {
		options = append(options, llm.WithURL(cfg.URL))
	}

	if cfg.Token != "" {
		options = append(options, llm.WithToken(cfg.Token))
	}

	if cfg.Temperature != nil {
		options = append(options, llm.WithTemperature(*cfg.Temperature))
	}

	if cfg.MaxTokens != nil {
		options = append(options, llm.WithMaxTokens(*cfg.MaxTokens))
	}

	return llm.New(cfg.Model, options...)
}
