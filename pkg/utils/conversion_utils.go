package utils

import "github.com/google/uuid"

// ParseUUIDParam parses a path or query parameter as a UUID.
func ParseUUIDParam(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
