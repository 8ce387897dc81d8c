package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// ESG scores update with rating-agency refreshes, roughly monthly.
	TTLESGScores = 7 * 24 * time.Hour

	// Company profiles (sector assignment) are effectively static.
	TTLCompanyProfile = 30 * 24 * time.Hour

	// Screener results shift with daily score updates.
	TTLUniverse = 24 * time.Hour
)
