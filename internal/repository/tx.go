package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrRoomUnavailable is returned when a write would make two live
	// reservations of one room share a night.
	ErrRoomUnavailable = errors.New("room is already reserved for the requested dates")
	ErrDuplicate       = errors.New("duplicate value")
)

// serializationRetries bounds how often a transaction aborted by a
// serialization failure is run again.
const serializationRetries = 3

const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

// runInTx runs fn in a transaction. PostgreSQL gets SERIALIZABLE isolation
// and fn is run again when the transaction loses a serialization conflict;
// SQLite serializes writers on its own.
func runInTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var opts []*sql.TxOptions
	if db.Dialector.Name() == "postgres" {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}
	var err error
	for attempt := 0; attempt < serializationRetries; attempt++ {
		err = db.WithContext(ctx).Transaction(fn, opts...)
		if !isSerializationFailure(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}

// translateWriteError maps storage constraint failures onto repository errors.
// A serialization failure that survived every retry is returned unchanged.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return ErrRoomUnavailable
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	if isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}
