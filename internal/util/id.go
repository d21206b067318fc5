package util

import "github.com/google/uuid"

// NewID returns a random UUID string. Record identifiers across the system
// are UUIDs so malformed IDs can be rejected without a store round-trip.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s is a well-formed record identifier.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
