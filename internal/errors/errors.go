package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/mindcalm/internal/logger"
)

// Hinted pairs a sentinel error with the next step a user should take when
// they hit it.
type Hinted struct {
	Err  error
	Hint string
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// FormatWithHint formats err and appends the hint of the first entry whose
// sentinel matches via errors.Is.
func FormatWithHint(err error, hints ...Hinted) string {
	msg := Format(err)
	if msg == "" {
		return ""
	}
	for _, h := range hints {
		if stderrors.Is(err, h.Err) {
			return msg + "\nHint: " + h.Hint
		}
	}
	return msg
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	logger.Error("command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
