package uid

import "github.com/google/uuid"

// UUID generates RFC 9562 UUID strings.
type UUID struct {
	random bool
}

// NewUUID returns a time-ordered (version 7) UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// NewRandomUUID returns a fully random (version 4) UUID generator.
func NewRandomUUID() *UUID {
	return &UUID{random: true}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	if u.random {
		return uuid.NewString()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
