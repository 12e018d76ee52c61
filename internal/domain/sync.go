package domain

import "time"

// SyncStats holds statistics about one subscriptions sync run.
type SyncStats struct {
	Lectures int
	Synced   int
	Skipped  int
	Errors   int
	Removed  int
	Duration time.Duration
}
