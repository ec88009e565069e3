package runtime

import "fmt"

// ToolError is a structured error carried through tool-handling code paths
// that still need to support errors.Is/errors.As chains (e.g. a handler
// wrapping a lower-level I/O failure). It is never itself sent to the model;
// handlers translate it into an ErrorResponse at the boundary.
type ToolError struct {
	Message string
	Cause   error
}

// NewToolError constructs a ToolError with no wrapped cause.
func NewToolError(message string) *ToolError {
	return &ToolError{Message: message}
}

// NewToolErrorWithCause constructs a ToolError wrapping cause.
func NewToolErrorWithCause(message string, cause error) *ToolError {
	return &ToolError{Message: message, Cause: cause}
}

// ToolErrorf constructs a ToolError with a formatted message.
func ToolErrorf(format string, args ...any) *ToolError {
	return &ToolError{Message: fmt.Sprintf(format, args...)}
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *ToolError) Unwrap() error { return e.Cause }
