package repository

import (
	"context"
	"testing"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedRoom(t *testing.T, db *gorm.DB, number string, roomType domain.RoomType) *domain.Room {
	t.Helper()
	room := &domain.Room{
		RoomNumber:    number,
		Type:          roomType,
		Capacity:      2,
		PricePerNight: 100,
		Status:        domain.RoomAvailable,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedReservation(t *testing.T, db *gorm.DB, roomID int64, in, out string, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	res := &domain.Reservation{
		ReservationNumber: "RES-" + in + "-" + out + "-" + string(status),
		UserID:            1,
		RoomID:            roomID,
		CheckInDate:       date(in),
		CheckOutDate:      date(out),
		NumberOfGuests:    1,
		Status:            status,
	}
	require.NoError(t, db.Create(res).Error)
	return res
}

var ctx = context.Background()
