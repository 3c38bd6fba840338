package documentModel

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType  = errors.New("unsupported type")
	ErrExtraction       = errors.New("text extraction failed")
	ErrParse            = errors.New("message parsing failed")
	ErrMalformedInput   = errors.New("malformed input")
	ErrNotFound         = errors.New("document not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file_type '%s'", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", ErrExtraction, e.Cause)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Cause}
}

type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrParse, e.Cause)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Cause}
}

type MalformedInputError struct {
	Cause error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("Invalid JSON: %v", e.Cause)
}

func (e *MalformedInputError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Cause}
}
