package domain

import "time"

// Document is a named text document owned by a single user.
type Document struct {
	ID        string
	UserID    string
	Name      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
