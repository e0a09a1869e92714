package utils

import "github.com/google/uuid"

// GenerateUUIDv7 returns a time-ordered id for new rows. v7 keeps primary-key
// inserts roughly append-ordered; v4 is the fallback when the clock source
// fails.
func GenerateUUIDv7() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}
