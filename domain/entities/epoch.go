package entities

import "time"

// SecondsPerDay is the length of one epoch day.
const SecondsPerDay = 86400

// CurrentEpochDay returns the number of whole days elapsed since the Unix
// epoch, in UTC. All check-in and billboard bucketing uses this index.
func CurrentEpochDay() int64 {
	return EpochDayAt(time.Now())
}

// EpochDayAt returns the epoch day containing the given instant.
func EpochDayAt(t time.Time) int64 {
	return t.UTC().Unix() / SecondsPerDay
}

// EpochDayStart returns the UTC midnight that opens the given epoch day.
func EpochDayStart(day int64) time.Time {
	return time.Unix(day*SecondsPerDay, 0).UTC()
}

// FormatEpochDay renders an epoch day as a calendar date (e.g. "Mar 14").
func FormatEpochDay(day int64) string {
	return EpochDayStart(day).Format("Jan 2")
}
