package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh random identifier in canonical form.
func NewID() string {
	return uuid.NewString()
}

// CanonicalID normalises a lookup key. Anything that parses as a UUID is
// rendered in lowercase hyphenated form; other keys are only trimmed and will
// never match a stored identifier.
func CanonicalID(raw string) string {
	raw = strings.TrimSpace(raw)
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return raw
}

// SameID reports whether a stored identifier and a lookup key refer to the
// same record.
func SameID(stored, key string) bool {
	return CanonicalID(stored) == CanonicalID(key)
}
