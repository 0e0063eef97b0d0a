package uid

import "github.com/google/uuid"

// UUID generates version 7 UUIDs.
type UUID struct{}

func NewUUID() *UUID { return &UUID{} }

// Generate returns a version 7 UUID, or version 4 if that fails.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
