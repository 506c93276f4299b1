package reservation

import (
	"time"

	"hotel/internal/domain"
)

type CreateReservationRequest struct {
	RoomID          int64   `json:"room_id" validate:"required,gt=0"`
	CheckInDate     string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate    string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	NumberOfGuests  int     `json:"number_of_guests" validate:"gte=1"`
	TotalPrice      float64 `json:"total_price" validate:"gte=0"`
	SpecialRequests string  `json:"special_requests" validate:"max=2000"`
}

// UpdateReservationRequest carries a partial update; nil fields are left alone.
type UpdateReservationRequest struct {
	CheckInDate     *string                   `json:"check_in_date" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate    *string                   `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	NumberOfGuests  *int                      `json:"number_of_guests" validate:"omitempty,gte=1"`
	TotalPrice      *float64                  `json:"total_price" validate:"omitempty,gte=0"`
	SpecialRequests *string                   `json:"special_requests" validate:"omitempty,max=2000"`
	Status          *domain.ReservationStatus `json:"status"`
}

type UpdateStatusRequest struct {
	Status domain.ReservationStatus `json:"status" validate:"required"`
}

type ReservationResponse struct {
	ID                int64                    `json:"id"`
	ReservationNumber string                   `json:"reservation_number"`
	UserID            int64                    `json:"user_id"`
	RoomID            int64                    `json:"room_id"`
	CheckInDate       string                   `json:"check_in_date"`
	CheckOutDate      string                   `json:"check_out_date"`
	Nights            int                      `json:"nights"`
	NumberOfGuests    int                      `json:"number_of_guests"`
	TotalPrice        float64                  `json:"total_price"`
	Status            domain.ReservationStatus `json:"status"`
	SpecialRequests   string                   `json:"special_requests,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

type AvailabilityResponse struct {
	RoomID       int64  `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Available    bool   `json:"available"`
}

func toResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                r.ID,
		ReservationNumber: r.ReservationNumber,
		UserID:            r.UserID,
		RoomID:            r.RoomID,
		CheckInDate:       r.CheckInDate.Format(domain.DateLayout),
		CheckOutDate:      r.CheckOutDate.Format(domain.DateLayout),
		Nights:            r.Nights(),
		NumberOfGuests:    r.NumberOfGuests,
		TotalPrice:        r.TotalPrice,
		Status:            r.Status,
		SpecialRequests:   r.SpecialRequests,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toResponses(list []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out
}
