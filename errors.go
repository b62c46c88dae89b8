package mapper

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidOptions indicates a mapping options value has an unsupported shape.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrUnknownHandler indicates a handler name is not registered.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrNotKeyed indicates a value cannot be read or populated by property name.
	ErrNotKeyed = errors.New("value is not keyed")

	// ErrReadOnly indicates a write into a derived container or unaddressable value.
	ErrReadOnly = errors.New("read-only target")

	// ErrFieldType indicates a mapped value cannot be stored in a struct field or map.
	ErrFieldType = errors.New("incompatible field type")

	// ErrUnkeyable indicates a key selector produced an uncomparable value.
	ErrUnkeyable = errors.New("key is not comparable")

	// ErrIgnored indicates the whole result was discarded where a value is required.
	ErrIgnored = errors.New("result ignored")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// OptionsError represents a malformed mapping options value.
// It wraps ErrInvalidOptions with the offending key.
type OptionsError struct {
	Err   error  // Underlying sentinel error
	Key   string // Reserved key or property that was malformed
	Value any    // Offending value
}

func (e *OptionsError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s has unsupported value of type %T", e.Err.Error(), e.Key, e.Value)
	}
	return fmt.Sprintf("%s: unsupported value of type %T", e.Err.Error(), e.Value)
}

func (e *OptionsError) Unwrap() error {
	return e.Err
}

// HandlerError represents a reference to a handler that is not registered.
type HandlerError struct {
	Err  error       // Underlying sentinel error (ErrUnknownHandler)
	Name HandlerName // Name that failed to resolve
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s %q", e.Err.Error(), e.Name)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err         error  // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	ContentType string // Content type of the codec
	Cause       error  // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newOptionsError creates an OptionsError for a malformed options value.
func newOptionsError(key string, value any) error {
	return &OptionsError{
		Err:   ErrInvalidOptions,
		Key:   key,
		Value: value,
	}
}

// newHandlerError creates a HandlerError for an unregistered name.
func newHandlerError(name HandlerName) error {
	return &HandlerError{
		Err:  ErrUnknownHandler,
		Name: name,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, contentType string, cause error) error {
	return &CodecError{
		Err:         sentinel,
		ContentType: contentType,
		Cause:       cause,
	}
}
