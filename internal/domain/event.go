package domain

import "time"

// Event is a calendar entry owned by a single user.
type Event struct {
	ID     string
	UserID string
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}
