package utils

import "time"

// Journal timestamps are always rendered in US Eastern Standard Time with a
// fixed offset, matching the display format the journal has always used.
var estLoc = time.FixedZone("EST", -5*60*60)

// ESTTimestamp returns the full entry timestamp, e.g.
// "Monday, January 2, 2006 03:04 PM EST".
func ESTTimestamp() string {
	return time.Now().In(estLoc).Format("Monday, January 2, 2006 03:04 PM MST")
}

// ESTClock returns the short clock time used on market snapshots, e.g.
// "03:04:05 PM EST".
func ESTClock() string {
	return time.Now().In(estLoc).Format("03:04:05 PM MST")
}

// NowEST returns the current time in the journal's display timezone.
func NowEST() time.Time {
	return time.Now().In(estLoc)
}

// EditedStamp returns the short timestamp recorded when an entry is edited.
func EditedStamp() string {
	return time.Now().In(estLoc).Format("2006-01-02 15:04")
}
