package flow

// ValidationError reports a pre-flight input problem: a missing or
// invalid directory, an unrecognized engine type, or an empty input
// set. Fatal to the run, surfaced before any processing begins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}
