package session

import (
	"strings"

	"github.com/google/uuid"
)

const prefix = "sess_"

// NewID returns a fresh client session identifier. IDs are URL safe and
// prefixed so they are recognizable in logs and analytics queries.
func NewID() string {
	return prefix + uuid.NewString()
}

// Valid reports whether s looks like an identifier this package produced.
func Valid(s string) bool {
	raw, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(raw)
	return err == nil
}
