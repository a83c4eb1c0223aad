package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"daybook/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	// sortable text timestamps so documents can be ordered by updated_at
	db, err := sql.Open("sqlite", path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return db, nil
}

// Store is the sqlite backed repository.Store.
type Store struct {
	db        *sql.DB
	users     *UserRepository
	profiles  *ProfileRepository
	events    *EventRepository
	documents *DocumentRepository
}

// NewStore opens the database file and builds every repository on top of it.
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:        db,
		users:     &UserRepository{db: db},
		profiles:  &ProfileRepository{db: db},
		events:    &EventRepository{db: db},
		documents: &DocumentRepository{db: db},
	}, nil
}

func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range []string{createUsersTable, createProfilesTable, createEventsTable, createDocumentsTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Profiles() repository.ProfileRepository   { return s.profiles }
func (s *Store) Events() repository.EventRepository       { return s.events }
func (s *Store) Documents() repository.DocumentRepository { return s.documents }

var _ repository.Store = (*Store)(nil)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

type scanner interface {
	Scan(dest ...any) error
}
