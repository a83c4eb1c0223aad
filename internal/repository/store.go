package repository

import "context"

// Store bundles the repositories of one database connection and owns its lifecycle.
type Store interface {
	// Init prepares tables, collections and indexes.
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	Users() UserRepository
	Profiles() ProfileRepository
	Events() EventRepository
	Documents() DocumentRepository
}
