package repository

import (
	"context"

	"hotel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Cascade describes what a payment write did to its reservation.
type Cascade struct {
	Confirmed      bool
	PreviousStatus domain.ReservationStatus
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).Order("payment_date DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("payment_date, id").
		Find(&out).Error
	return out, err
}

// Create inserts p and, when it is already completed, confirms the
// reservation in the same transaction.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (Cascade, error) {
	var c Cascade
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		p.ID = 0
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if p.Status != domain.PaymentCompleted {
			return nil
		}
		var err error
		c, err = confirmReservation(tx, p.ReservationID)
		return err
	})
	return c, translateWriteError(err)
}

// UpdateStatus sets the payment status; a move to completed confirms the
// reservation atomically with the payment write.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, Cascade, error) {
	var (
		p domain.Payment
		c Cascade
	)
	err := runInTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			return err
		}
		p.Status = status
		if err := tx.Model(&p).Update("status", status).Error; err != nil {
			return err
		}
		if status != domain.PaymentCompleted {
			return nil
		}
		var err error
		c, err = confirmReservation(tx, p.ReservationID)
		return err
	})
	if err != nil {
		return nil, Cascade{}, translateWriteError(err)
	}
	return &p, c, nil
}

func confirmReservation(tx *gorm.DB, reservationID int64) (Cascade, error) {
	var res domain.Reservation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, reservationID).Error; err != nil {
		return Cascade{}, err
	}
	c := Cascade{Confirmed: true, PreviousStatus: res.Status}
	if res.Status == domain.ReservationConfirmed {
		return c, nil
	}
	return c, tx.Model(&res).Update("status", domain.ReservationConfirmed).Error
}
