package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/weeklit/internal/logger"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = stderrors.New("not found")

// NotFoundError reports a week, day or task id that the store does not hold.
// The store treats these as no-ops; the CLI surfaces them to the user.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound builds a NotFoundError for kind ("task", "week", "day").
func NotFound(kind string, id int) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr and exits with code 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Formatf is Format for a format string.
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatalf logs and prints a formatted message, then exits with code 1.
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
