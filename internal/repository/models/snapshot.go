package models

import "time"

// Snapshot is a stored dashboard build. Payload holds the encoded dashboard.
type Snapshot struct {
	ID           string
	CreatedAt    time.Time
	ProjectCount int
	FailedCount  int
	Payload      []byte
}
