package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Error kinds returned by the data-access layer. Match them with errors.Is;
// the store's original error stays in the chain.
var (
	ErrConnection          = errors.New("database connection failed")
	ErrMigration           = errors.New("schema migration failed")
	ErrNotFound            = errors.New("record not found")
	ErrAmbiguous           = errors.New("lookup matched more than one record")
	ErrValidation          = errors.New("validation failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrTransport           = errors.New("database transport error")
	ErrNotImplemented      = errors.New("not implemented")
	ErrScopeClosed         = errors.New("transaction scope already closed")
)

var kinds = []error{
	ErrConnection,
	ErrMigration,
	ErrNotFound,
	ErrAmbiguous,
	ErrValidation,
	ErrConstraintViolation,
	ErrTransport,
	ErrNotImplemented,
	ErrScopeClosed,
}

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Missing reports an absent required field.
func Missing(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// Kind returns the error kind err belongs to, or nil.
func Kind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Classify maps a store error onto the error kinds above. Errors that
// already carry a kind pass through unchanged.
func Classify(err error) error {
	return classify(err)
}

func classify(err error) error {
	if err == nil || Kind(err) != nil {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		isConstraintError(err):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	// class 23 is "integrity constraint violation"
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return false
}
