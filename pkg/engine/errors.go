package engine

// ExtractionError reports a failed extraction for a single image. It is
// bounded to that item: the batch processor retries and records it, the
// run keeps going.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "extraction failed: " + e.Path
	}

	return "extraction failed: " + e.Path + ": " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an invalid engine setup (bad credentials,
// missing model, unreachable endpoint). Fatal to the run.
type ConfigurationError struct {
	Engine string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return "invalid " + e.Engine + " engine configuration"
	}

	return "invalid " + e.Engine + " engine configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
