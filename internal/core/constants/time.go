package constants

import "time"

const (
	// Billing block length. A block starts at the hour floor of its first
	// entry and closes after this much time or after this much inactivity.
	BlockDuration = 5 * time.Hour

	// Recent-data window kept when full history is not requested: the
	// earlier of local midnight minus RecentMidnightLead and now minus
	// RecentLookback.
	RecentMidnightLead = BlockDuration
	RecentLookback     = 10 * time.Hour
)
