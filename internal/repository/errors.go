package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/templui/goalnote/internal/apperror"
)

var (
	ErrUserNotFound   = apperror.NotFound("User not found")
	ErrGoalNotFound   = apperror.NotFound("Goal not found")
	ErrTodoNotFound   = apperror.NotFound("Todo not found")
	ErrNoteNotFound   = apperror.NotFound("Note not found")
	ErrFileNotFound   = apperror.NotFound("File not found")
	ErrDuplicateEmail = apperror.Conflict("Email already registered")
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type constraint int

const (
	constraintNone constraint = iota
	constraintUnique
	constraintForeignKey
)

// translate is the single point where driver errors become application
// errors. Callers handle sql.ErrNoRows themselves before calling it.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch violatedConstraint(err) {
	case constraintUnique:
		return apperror.Wrap(apperror.KindConflict, "Duplicate data exists", err)
	case constraintForeignKey:
		return apperror.Wrap(apperror.KindBadRequest, "Related data does not exist", err)
	}

	return apperror.Wrap(apperror.KindInternal, "Database error", err)
}

func violatedConstraint(err error) constraint {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return constraintUnique
		case pgForeignKeyViolation:
			return constraintForeignKey
		}
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		}
	}

	// Fallback for wrapped or driver-formatted messages
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "unique constraint"), strings.Contains(errStr, "duplicate key value"):
		return constraintUnique
	case strings.Contains(errStr, "foreign key constraint"):
		return constraintForeignKey
	}

	return constraintNone
}
