package repository

import (
	"context"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).First(&res, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).Order("check_in_date DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("check_in_date, id").
		Find(&out).Error
	return out, err
}

// ListByDate returns reservations arriving or departing on day.
func (r *ReservationRepository) ListByDate(ctx context.Context, day time.Time) ([]domain.Reservation, error) {
	day = domain.DateOf(day)
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("check_in_date = ? OR check_out_date = ?", day, day).
		Order("room_id, id").
		Find(&out).Error
	return out, err
}

// HasOverlap reports whether a non-cancelled reservation of roomID intersects
// [checkIn, checkOut). excludeID skips one reservation (0 skips none).
func (r *ReservationRepository) HasOverlap(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	return hasOverlap(r.db.WithContext(ctx), roomID, checkIn, checkOut, excludeID)
}

func hasOverlap(db *gorm.DB, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	q := db.Model(&domain.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", domain.ReservationCancelled).
		Where("check_in_date < ? AND check_out_date > ?", domain.DateOf(checkOut), domain.DateOf(checkIn))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// CreateIfAvailable inserts res only if its room is free for the whole stay.
// The room row is locked for the duration of the check and the insert.
func (r *ReservationRepository) CreateIfAvailable(ctx context.Context, res *domain.Reservation) error {
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := lockRoom(tx, res.RoomID); err != nil {
			return err
		}
		busy, err := hasOverlap(tx, res.RoomID, res.CheckInDate, res.CheckOutDate, 0)
		if err != nil {
			return err
		}
		if busy {
			return ErrRoomUnavailable
		}
		res.ID = 0
		return tx.Create(res).Error
	})
	return translateWriteError(err)
}

// UpdateLocked reads reservation id under a row lock, lets apply modify it
// and writes back only the columns apply changed. Changed dates of a live
// reservation are re-checked against every other reservation of the room.
// apply may run more than once and must only depend on the row it is given.
func (r *ReservationRepository) UpdateLocked(ctx context.Context, id int64, apply func(res *domain.Reservation) error) (*domain.Reservation, error) {
	var res domain.Reservation
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		res = domain.Reservation{}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
			return err
		}
		before := res
		if err := apply(&res); err != nil {
			return err
		}
		res.ID, res.UserID, res.RoomID = before.ID, before.UserID, before.RoomID

		datesChanged := !res.CheckInDate.Equal(before.CheckInDate) || !res.CheckOutDate.Equal(before.CheckOutDate)
		if datesChanged && res.Status != domain.ReservationCancelled {
			if err := lockRoom(tx, res.RoomID); err != nil {
				return err
			}
			busy, err := hasOverlap(tx, res.RoomID, res.CheckInDate, res.CheckOutDate, res.ID)
			if err != nil {
				return err
			}
			if busy {
				return ErrRoomUnavailable
			}
		}

		cols := changedColumns(&before, &res)
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(&res).Select(cols).Updates(&res).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return &res, nil
}

func changedColumns(before, after *domain.Reservation) []string {
	var cols []string
	if !after.CheckInDate.Equal(before.CheckInDate) {
		cols = append(cols, "check_in_date")
	}
	if !after.CheckOutDate.Equal(before.CheckOutDate) {
		cols = append(cols, "check_out_date")
	}
	if after.NumberOfGuests != before.NumberOfGuests {
		cols = append(cols, "number_of_guests")
	}
	if after.TotalPrice != before.TotalPrice {
		cols = append(cols, "total_price")
	}
	if after.SpecialRequests != before.SpecialRequests {
		cols = append(cols, "special_requests")
	}
	if after.Status != before.Status {
		cols = append(cols, "status")
	}
	return cols
}

// UpdateStatus overwrites the status without any availability check.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	var res domain.Reservation
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
			return err
		}
		res.Status = status
		return tx.Model(&res).Update("status", status).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}
	return &res, nil
}

func lockRoom(tx *gorm.DB, roomID int64) error {
	var room domain.Room
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&room, roomID).Error
}
