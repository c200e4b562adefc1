package analysis

import "errors"

// Client-facing messages for rejected uploads.
const (
	MsgNoFile    = "No file uploaded"
	MsgTooLarge  = "File too large. Maximum size is 10MB."
	MsgAnalyzing = "Error analyzing resume"
)

var (
	// ErrNoFile is returned when the request carries no resume file.
	ErrNoFile = errors.New("no file uploaded")
	// ErrTooLarge is returned when the upload exceeds the size limit.
	ErrTooLarge = errors.New("upload exceeds size limit")
)

// InputError reports an upload rejected before extraction. Message is
// safe to return to the client.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a failure while storing or reading the upload.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return MsgAnalyzing + ": " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Details returns the underlying cause for diagnostic output.
func (e *ExtractionError) Details() string {
	return e.Err.Error()
}
