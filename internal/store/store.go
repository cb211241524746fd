package store

import (
	"context"
	stdErrors "errors"

	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// RecordStore persists user records keyed by username.
type RecordStore interface {
	GetUser(ctx context.Context, username string) (*types.UserRecord, error)
	PutUser(ctx context.Context, username string, record types.UserRecord) error
}

// IsNotFound reports whether err marks a missing record.
func IsNotFound(err error) bool {
	var appErr *forgeErrors.AppError
	return stdErrors.As(err, &appErr) && appErr.Code == forgeErrors.ErrCodeRecordNotFound
}

// notFound builds the canonical missing-record error.
func notFound(username string) error {
	return forgeErrors.NewStoreError(forgeErrors.ErrCodeRecordNotFound,
		"No record found for user", nil).WithContext("username", username)
}
