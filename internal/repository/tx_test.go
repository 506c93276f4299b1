package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateWriteError(t *testing.T) {
	other := errors.New("disk full")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"exclusion", &pgconn.PgError{Code: pgExclusionViolation}, ErrRoomUnavailable},
		{"wrapped exclusion", fmt.Errorf("confirm: %w", &pgconn.PgError{Code: pgExclusionViolation}), ErrRoomUnavailable},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation}, ErrDuplicate},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateWriteError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateWriteError_SerializationIsNotUnavailable(t *testing.T) {
	err := translateWriteError(&pgconn.PgError{Code: pgSerializationFailure})

	assert.NotErrorIs(t, err, ErrRoomUnavailable)
	assert.True(t, isSerializationFailure(err))
}

func TestRunInTx_RetriesSerializationFailure(t *testing.T) {
	db := newTestDB(t)

	calls := 0
	err := runInTx(ctx, db, func(tx *gorm.DB) error {
		calls++
		if calls < serializationRetries {
			return &pgconn.PgError{Code: pgSerializationFailure}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, serializationRetries, calls)

	calls = 0
	err = runInTx(ctx, db, func(tx *gorm.DB) error {
		calls++
		return &pgconn.PgError{Code: pgSerializationFailure}
	})
	assert.True(t, isSerializationFailure(err))
	assert.Equal(t, serializationRetries, calls)
}

func TestRunInTx_OtherErrorsRunOnce(t *testing.T) {
	db := newTestDB(t)

	calls := 0
	err := runInTx(ctx, db, func(tx *gorm.DB) error {
		calls++
		return ErrRoomUnavailable
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Equal(t, 1, calls)
}
