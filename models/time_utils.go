package models

import "time"

// DaysLeft returns the whole days remaining until expiresAt. Past dates give 0.
func DaysLeft(expiresAt, now time.Time) int {
	if !expiresAt.After(now) {
		return 0
	}
	return int(expiresAt.Sub(now).Hours() / 24)
}
