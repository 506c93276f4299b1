package payment

import (
	"time"

	"hotel/internal/domain"
)

type RecordPaymentRequest struct {
	ReservationID  int64                `json:"reservation_id" validate:"required,gt=0"`
	Amount         float64              `json:"amount" validate:"gt=0"`
	PaymentMethod  domain.PaymentMethod `json:"payment_method" validate:"required,oneof=credit_card debit_card cash bank_transfer paypal"`
	Status         domain.PaymentStatus `json:"status" validate:"omitempty,oneof=pending processing completed failed refunded"`
	PaymentDetails string               `json:"payment_details" validate:"max=2000"`
}

type UpdateStatusRequest struct {
	Status domain.PaymentStatus `json:"status" validate:"required,oneof=pending processing completed failed refunded"`
}

type PaymentResponse struct {
	ID             int64                `json:"id"`
	TransactionID  string               `json:"transaction_id"`
	ReservationID  int64                `json:"reservation_id"`
	Amount         float64              `json:"amount"`
	PaymentMethod  domain.PaymentMethod `json:"payment_method"`
	Status         domain.PaymentStatus `json:"status"`
	PaymentDate    time.Time            `json:"payment_date"`
	PaymentDetails string               `json:"payment_details,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

func toResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		TransactionID:  p.TransactionID,
		ReservationID:  p.ReservationID,
		Amount:         p.Amount,
		PaymentMethod:  p.PaymentMethod,
		Status:         p.Status,
		PaymentDate:    p.PaymentDate,
		PaymentDetails: p.PaymentDetails,
		CreatedAt:      p.CreatedAt,
	}
}

func toResponses(list []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out
}
