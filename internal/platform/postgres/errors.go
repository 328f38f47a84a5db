package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/signdeck/internal/store"
)

// PostgreSQL error codes
const (
	serializationFailureCode = "40001"
	deadlockDetectedCode     = "40P01"
	undefinedTableCode       = "42P01"

	// Class 08 covers connection exceptions; class 57P covers server
	// shutdown and similar operator interventions.
	connectionExceptionClass   = "08"
	operatorInterventionPrefix = "57P"
)

// MapError maps a database error to the store error taxonomy, wrapping the
// original for context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == serializationFailureCode, pgErr.Code == deadlockDetectedCode:
			return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
		case pgErr.Code == undefinedTableCode:
			return fmt.Errorf("%w: schema missing, run migrations: %w", store.ErrUnavailable, err)
		case strings.HasPrefix(pgErr.Code, connectionExceptionClass),
			strings.HasPrefix(pgErr.Code, operatorInterventionPrefix):
			return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	return err
}

// IsUnavailable reports whether err means the database could not be used.
func IsUnavailable(err error) bool {
	return errors.Is(MapError(err), store.ErrUnavailable)
}
