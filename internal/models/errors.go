package models

import "errors"

var (
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrEmbedding          = errors.New("embedding error")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrPreconditionNotMet = errors.New("precondition not met")
	ErrNoText             = errors.New("no extractable text")
)

// Kind returns the user facing label of the error kind wrapped by err.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return "UnsupportedFormat"
	case errors.Is(err, ErrEmbedding):
		return "EmbeddingError"
	case errors.Is(err, ErrMalformedResponse):
		return "MalformedResponse"
	case errors.Is(err, ErrPreconditionNotMet):
		return "PreconditionNotMet"
	case errors.Is(err, ErrNoText):
		return "NoText"
	default:
		return "Error"
	}
}
