//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileSave,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpFileSave,
			err:      errors.New("permission denied"),
			expected: "Failed to save file: permission denied",
		},
		{
			name:     "query compile operation",
			op:       OpQueryCompile,
			err:      errors.New("expected atom, found `foo`"),
			expected: "Failed to compile query: expected atom, found `foo`",
		},
		{
			name:     "collect operation",
			op:       OpFilesCollect,
			err:      errors.New("no such file or directory"),
			expected: "Failed to collect files: no such file or directory",
		},
		{
			name:     "history operation",
			op:       OpHistoryOpen,
			err:      errors.New("database is locked"),
			expected: "Failed to open query history: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileLoad,
			context:  "song.flac",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpFileLoad,
			context:  "song.flac",
			err:      errors.New("permission denied"),
			expected: "Failed to load file 'song.flac': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpFileLoad,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to load file: permission denied",
		},
		{
			name:     "assignment with input context",
			op:       OpEditParse,
			context:  "title:(a",
			err:      errors.New("unbalanced `(`"),
			expected: "Failed to parse assignment 'title:(a': unbalanced `(`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpFileSave, nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if WrapWith(OpFileSave, "a.flac", nil) != nil {
		t.Error("WrapWith(nil) should return nil")
	}

	cause := errors.New("disk full")

	err := Wrap(OpFileSave, cause)
	if got, want := err.Error(), "Failed to save file: disk full"; got != want {
		t.Errorf("Wrap().Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap should unwrap to the cause")
	}

	err = WrapWith(OpFileSave, "a.flac", cause)
	if got, want := err.Error(), "Failed to save file 'a.flac': disk full"; got != want {
		t.Errorf("WrapWith().Error() = %q, want %q", got, want)
	}

	var e *Error
	if !errors.As(err, &e) || e.Op != OpFileSave {
		t.Errorf("errors.As should expose the operation, got %v", e)
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpQueryCompile, OpQueryRun,
		OpFilesCollect, OpFileLoad, OpFileSave,
		OpEditParse, OpEditPlan,
		OpHistoryOpen, OpHistoryLoad, OpHistoryRecord, OpHistoryClear,
		OpList,
		OpConfigLoad,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			// Verify the format includes the operation
			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
