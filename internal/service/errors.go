package service

import "errors"

var (
	// ErrInvalidInput indicates a required field is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("username already exists")
	// ErrUserNotFound is returned when no user matches the username or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword indicates the password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrProfileNotFound is returned when a user has no profile record.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEventNotFound is returned for unknown events and events owned by someone else.
	ErrEventNotFound = errors.New("event not found")
	// ErrDocumentNotFound is returned for unknown documents and documents owned by someone else.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrStorageDisabled is returned by upload operations when no bucket is configured.
	ErrStorageDisabled = errors.New("object storage is not configured")
)
