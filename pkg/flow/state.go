package flow

import (
	"time"

	"github.com/arcline/textsweep/pkg/batch"
)

// EngineOptions is the raw engine configuration payload carried into a
// run. The createEngine stage matches it to the typed variant for the
// configured engine type.
type EngineOptions struct {
	URL   string
	Token string
	Model string

	Languages []string

	Temperature *float64
	MaxTokens   *int

	Timeout  time.Duration
	Insecure bool

	Limit *int
}

// State is the mutable record threaded through one pipeline run. It is
// created at run start, owned exclusively by the Flow, and discarded
// when the run ends. Each stage writes only its own fields.
type State struct {
	RunID string

	ImageDir  string
	OutputDir string

	EngineType   string
	EngineConfig EngineOptions

	TotalImages     int
	ProcessedImages int
	Successful      int
	Failed          int

	Results []batch.Result
}
