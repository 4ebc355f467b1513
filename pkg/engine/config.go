package engine

import (
	"time"
)

// Config is the engine configuration union. Each engine type accepts
// exactly one variant; the factory rejects mismatches instead of
// coercing them.
type Config interface {
	engineConfig()
}

type PassthroughConfig struct {
}

type DoclingConfig struct {
	URL   string
	Token string

	Timeout time.Duration
}

type LLMConfig struct {
	Model string

	URL   string
	Token string

	Temperature *float64
	MaxTokens   *int
}

type APIConfig struct {
	URL   string
	Token string

	Timeout  time.Duration
	Insecure bool
}

type TesseractConfig struct {
	Languages []string
}

func (PassthroughConfig) engineConfig() {}

func (DoclingConfig) engineConfig() {}

func (LLMConfig) engineConfig() {}

func (APIConfig) engineConfig() {}

func (TesseractConfig) engineConfig() {}
