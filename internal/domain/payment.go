package domain

import "time"

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodPayPal       PaymentMethod = "paypal"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodCash, MethodBankTransfer, MethodPayPal:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

type Payment struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	TransactionID  string        `json:"transaction_id" gorm:"size:32;uniqueIndex;not null"`
	ReservationID  int64         `json:"reservation_id" gorm:"not null;index"`
	Amount         float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod  PaymentMethod `json:"payment_method" gorm:"size:16;not null"`
	Status         PaymentStatus `json:"status" gorm:"size:16;not null;index"`
	PaymentDate    time.Time     `json:"payment_date" gorm:"not null;index"`
	PaymentDetails string        `json:"payment_details,omitempty" gorm:"type:text"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
