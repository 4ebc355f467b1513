package batch

import (
	"time"
)

// Result records the outcome of processing one image. OutputPath is set
// only on success; Error is set only on failure.
type Result struct {
	ImagePath string
	Success   bool

	OutputPath string
	Error      string

	Attempts int
	Duration time.Duration
}

// Report aggregates the results of one batch run.
type Report struct {
	TotalImages int
	Successful  int
	Failed      int

	Duration time.Duration

	Results []Result
}

// SuccessRate returns the fraction of successfully processed images,
// 0.0 for an empty batch.
func (r *Report) SuccessRate() float64 {
	if r.TotalImages == 0 {
		return 0.0
	}

	return float64(r.Successful) / float64(r.TotalImages)
}
