package domain

import "time"

type Message struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	SenderID    int64      `json:"sender_id" gorm:"not null;index"`
	RecipientID int64      `json:"recipient_id" gorm:"not null;index"`
	Subject     string     `json:"subject" gorm:"size:255"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Read        bool       `json:"read" gorm:"column:is_read;not null;index"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
