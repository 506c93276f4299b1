package domain

import (
	"time"

	"gorm.io/datatypes"
)

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomSuperior RoomType = "superior"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
	RoomFamily   RoomType = "family"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomStandard, RoomSuperior, RoomDeluxe, RoomSuite, RoomFamily:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomCleaning    RoomStatus = "cleaning"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}

type Room struct {
	ID                 int64                       `json:"id" gorm:"primaryKey"`
	RoomNumber         string                      `json:"room_number" gorm:"size:16;uniqueIndex;not null"`
	Type               RoomType                    `json:"type" gorm:"size:16;not null;index"`
	Capacity           int                         `json:"capacity" gorm:"not null"`
	PricePerNight      float64                     `json:"price_per_night" gorm:"type:decimal(10,2);not null"`
	Description        string                      `json:"description,omitempty" gorm:"type:text"`
	Status             RoomStatus                  `json:"status" gorm:"size:16;not null"`
	HasAirConditioning bool                        `json:"has_air_conditioning"`
	HasTV              bool                        `json:"has_tv"`
	HasMinibar         bool                        `json:"has_minibar"`
	HasSafe            bool                        `json:"has_safe"`
	HasWifi            bool                        `json:"has_wifi"`
	ImageURLs          datatypes.JSONSlice[string] `json:"image_urls" gorm:"column:image_urls"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}
