package domain

// ActionResult is the outcome of one request: either Ok text or an error.
// It is surfaced directly to the caller and never retried.
type ActionResult struct {
	text string
	err  error
}

// Ok wraps a successful, human-readable result.
func Ok(text string) ActionResult {
	return ActionResult{text: text}
}

// Fail wraps a failure. A nil error is treated as an unspecified failure.
func Fail(err error) ActionResult {
	if err == nil {
		err = errUnspecified
	}
	return ActionResult{err: err}
}

// IsError reports whether the result is a failure.
func (r ActionResult) IsError() bool {
	return r.err != nil
}

// Text returns the Ok text, or the empty string for failures.
func (r ActionResult) Text() string {
	return r.text
}

// Err returns the failure, or nil for Ok results.
func (r ActionResult) Err() error {
	return r.err
}

// Message returns the Ok text or the failure message.
func (r ActionResult) Message() string {
	if r.err != nil {
		return r.err.Error()
	}
	return r.text
}

// String renders the result the way it is shown to users.
func (r ActionResult) String() string {
	if r.err != nil {
		return "Error: " + r.err.Error()
	}
	return r.text
}
