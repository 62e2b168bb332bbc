// Package constants defines numerical limits and conversion factors.
package constants

const (
	// Result pages fetched per search variant
	MaxSearchPages = 2

	// Schedule entries requested per refresh
	SchedulePageSize = 50

	// Seconds in a UTC calendar day, for the schedule query window
	SecondsPerDay = 86400

	// Candidates resolved through the debrid backend in eager mode
	MaxEagerUnlocks = 5
)
