package repository

import (
	"context"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	tx := r.db.WithContext(ctx).First(&room, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) ListByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Where("type = ?", t).Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) ListByMinCapacity(ctx context.Context, capacity int) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("capacity >= ?", capacity).
		Order("capacity, room_number").
		Find(&rooms).Error
	return rooms, err
}

// FindAvailable returns every room with no live reservation intersecting
// [checkIn, checkOut), optionally restricted to one type.
func (r *RoomRepository) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomType domain.RoomType) ([]domain.Room, error) {
	var rooms []domain.Room
	err := availableRooms(r.db.WithContext(ctx), checkIn, checkOut, roomType).
		Order("room_number").
		Find(&rooms).Error
	return rooms, err
}

func availableRooms(db *gorm.DB, checkIn, checkOut time.Time, roomType domain.RoomType) *gorm.DB {
	busy := db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.Reservation{}).
		Select("room_id").
		Where("status <> ?", domain.ReservationCancelled).
		Where("check_in_date < ? AND check_out_date > ?", domain.DateOf(checkOut), domain.DateOf(checkIn))

	q := db.Model(&domain.Room{}).Where("id NOT IN (?)", busy)
	if roomType != "" {
		q = q.Where("type = ?", roomType)
	}
	return q
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return translateWriteError(r.db.WithContext(ctx).Create(room).Error)
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return translateWriteError(r.db.WithContext(ctx).Save(room).Error)
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Room{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) ExistsByNumber(ctx context.Context, number string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{}).Where("room_number = ?", number)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt > 0, err
}

// HasReservations reports whether any reservation, in any status, references the room.
func (r *RoomRepository) HasReservations(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Reservation{}).Where("room_id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}
