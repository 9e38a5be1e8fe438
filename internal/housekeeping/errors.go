package housekeeping

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition marks a task state change that the lifecycle
	// state machine rejects. Rejections are synchronous and produce no
	// side effects; the caller can correct the request and retry.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotFound marks a task, room, or stay lookup that came back empty.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed completion input.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = errors.New("housekeeping failure")
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "task failure"
	}
	return strings.Join(parts, ": ")
}
