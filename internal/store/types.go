package store

import "time"

// Privilege tiers a snapshot request can run at.
const (
	TierUnprivileged = "unprivileged"
	TierEscalated    = "escalated"
)

// Outcomes of a snapshot request.
const (
	StatusCreated = "created"
	StatusFailed  = "failed"
)

// Request is one recorded snapshot request: which target triggered it, what
// suffix and tier it ran with, and whether it succeeded.
type Request struct {
	ID        int64
	CreatedAt time.Time
	Target    string
	Suffix    string
	UTC       bool
	Tier      string
	Status    string
	PathCount int
}
