package domain

import "time"

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationCheckedIn  ReservationStatus = "checked_in"
	ReservationCheckedOut ReservationStatus = "checked_out"
	ReservationCancelled  ReservationStatus = "cancelled"
	ReservationNoShow     ReservationStatus = "no_show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn,
		ReservationCheckedOut, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further lifecycle transition is expected.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCheckedOut || s == ReservationCancelled || s == ReservationNoShow
}

type Reservation struct {
	ID                int64             `json:"id" gorm:"primaryKey"`
	ReservationNumber string            `json:"reservation_number" gorm:"size:32;uniqueIndex;not null"`
	UserID            int64             `json:"user_id" gorm:"not null;index"`
	RoomID            int64             `json:"room_id" gorm:"not null;index"`
	CheckInDate       time.Time         `json:"check_in_date" gorm:"type:date;not null;index"`
	CheckOutDate      time.Time         `json:"check_out_date" gorm:"type:date;not null;index"`
	NumberOfGuests    int               `json:"number_of_guests" gorm:"not null"`
	TotalPrice        float64           `json:"total_price" gorm:"type:decimal(10,2)"`
	Status            ReservationStatus `json:"status" gorm:"size:16;not null;index"`
	SpecialRequests   string            `json:"special_requests,omitempty" gorm:"type:text"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Nights is the number of nights between check-in and check-out.
func (r *Reservation) Nights() int {
	return DaysBetween(r.CheckInDate, r.CheckOutDate)
}
