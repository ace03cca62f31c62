// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Query operations
	OpQueryCompile Op = "compile query"
	OpQueryRun     Op = "run query"

	// File operations
	OpFilesCollect Op = "collect files"
	OpFileLoad     Op = "load file"
	OpFileSave     Op = "save file"

	// Edit operations
	OpEditParse Op = "parse assignment"
	OpEditPlan  Op = "prepare edits"

	// History operations
	OpHistoryOpen   Op = "open query history"
	OpHistoryLoad   Op = "load query history"
	OpHistoryRecord Op = "record query"
	OpHistoryClear  Op = "clear query history"

	// Output
	OpList Op = "list files"

	// Initialization
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an error annotated with the operation that failed.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string { return FormatWith(e.Op, e.Context, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap annotates err with op. It returns nil if err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapWith annotates err with op and a context such as a file path.
// It returns nil if err is nil.
func WrapWith(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}
