package customer

import "errors"

// Kind classifies validation failures.
type Kind string

const (
	// KindParse is a missing or unparseable field value.
	KindParse Kind = "parse"
	// KindRange is a parsed value outside of its allowed range.
	KindRange Kind = "range"
)

var (
	ErrParse = errors.New("invalid field value")
	ErrRange = errors.New("field value out of range")
)

// ValidationError describes the first rule a submission violated.
type ValidationError struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches the ErrParse and ErrRange sentinels by kind.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrParse:
		return e.Kind == KindParse
	case ErrRange:
		return e.Kind == KindRange
	default:
		return false
	}
}

func parseError(field, msg string) *ValidationError {
	return &ValidationError{Kind: KindParse, Field: field, Message: msg}
}

// AsValidationError returns the validation error wrapped in err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
