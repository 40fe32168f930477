package message

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("message not found")
	ErrInvalidInput = errors.New("invalid message")
)

// ValidationError lists the offending fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid message: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MissingRequired reports whether any field failed because it was absent.
func (e *ValidationError) MissingRequired() bool {
	for _, reason := range e.Fields {
		if strings.HasSuffix(reason, "is required") {
			return true
		}
	}
	return false
}
