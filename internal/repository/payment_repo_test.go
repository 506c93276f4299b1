package repository

import (
	"testing"
	"time"

	"hotel/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCreate_CompletedConfirmsReservation(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentRepository(db)
	reservations := NewReservationRepository(db)
	room := seedRoom(t, db, "101", domain.RoomStandard)
	res := seedReservation(t, db, room.ID, "2024-06-01", "2024-06-05", domain.ReservationPending)

	p := &domain.Payment{
		TransactionID: "TRX-AAAA0001",
		ReservationID: res.ID,
		Amount:        400,
		PaymentMethod: domain.MethodCash,
		Status:        domain.PaymentCompleted,
		PaymentDate:   time.Now().UTC(),
	}
	cascade, err := payments.Create(ctx, p)
	require.NoError(t, err)
	assert.True(t, cascade.Confirmed)
	assert.Equal(t, domain.ReservationPending, cascade.PreviousStatus)

	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, got.Status)
}

func TestPaymentCreate_PendingLeavesReservation(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentRepository(db)
	reservations := NewReservationRepository(db)
	room := seedRoom(t, db, "101", domain.RoomStandard)
	res := seedReservation(t, db, room.ID, "2024-06-01", "2024-06-05", domain.ReservationPending)

	cascade, err := payments.Create(ctx, &domain.Payment{
		TransactionID: "TRX-AAAA0002",
		ReservationID: res.ID,
		Amount:        50,
		PaymentMethod: domain.MethodCreditCard,
		Status:        domain.PaymentPending,
		PaymentDate:   time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.False(t, cascade.Confirmed)

	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, got.Status)
}

func TestPaymentUpdateStatus_Cascade(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentRepository(db)
	reservations := NewReservationRepository(db)
	room := seedRoom(t, db, "101", domain.RoomStandard)
	res := seedReservation(t, db, room.ID, "2024-06-01", "2024-06-05", domain.ReservationCancelled)

	p := &domain.Payment{
		TransactionID: "TRX-AAAA0003",
		ReservationID: res.ID,
		Amount:        120,
		PaymentMethod: domain.MethodBankTransfer,
		Status:        domain.PaymentProcessing,
		PaymentDate:   time.Now().UTC(),
	}
	_, err := payments.Create(ctx, p)
	require.NoError(t, err)

	updated, cascade, err := payments.UpdateStatus(ctx, p.ID, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, updated.Status)
	assert.Equal(t, domain.ReservationCancelled, cascade.PreviousStatus)

	got, err := reservations.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, got.Status)
}

func TestPaymentCreate_UnknownReservationRollsBack(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentRepository(db)

	_, err := payments.Create(ctx, &domain.Payment{
		TransactionID: "TRX-AAAA0004",
		ReservationID: 404,
		Amount:        10,
		PaymentMethod: domain.MethodCash,
		Status:        domain.PaymentCompleted,
		PaymentDate:   time.Now().UTC(),
	})
	require.Error(t, err)

	list, err := payments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
