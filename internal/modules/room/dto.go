package room

import "hotel/internal/domain"

type CreateRoomRequest struct {
	RoomNumber         string            `json:"room_number" validate:"required,max=16"`
	Type               domain.RoomType   `json:"type" validate:"required,oneof=standard superior deluxe suite family"`
	Capacity           int               `json:"capacity" validate:"gte=1"`
	PricePerNight      float64           `json:"price_per_night" validate:"gt=0"`
	Description        string            `json:"description"`
	Status             domain.RoomStatus `json:"status" validate:"omitempty,oneof=available occupied maintenance cleaning"`
	HasAirConditioning bool              `json:"has_air_conditioning"`
	HasTV              bool              `json:"has_tv"`
	HasMinibar         bool              `json:"has_minibar"`
	HasSafe            bool              `json:"has_safe"`
	HasWifi            bool              `json:"has_wifi"`
	ImageURLs          []string          `json:"image_urls" validate:"omitempty,dive,url"`
}

type UpdateRoomRequest struct {
	RoomNumber         *string            `json:"room_number,omitempty" validate:"omitempty,min=1,max=16"`
	Type               *domain.RoomType   `json:"type,omitempty" validate:"omitempty,oneof=standard superior deluxe suite family"`
	Capacity           *int               `json:"capacity,omitempty" validate:"omitempty,gte=1"`
	PricePerNight      *float64           `json:"price_per_night,omitempty" validate:"omitempty,gt=0"`
	Description        *string            `json:"description,omitempty"`
	Status             *domain.RoomStatus `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance cleaning"`
	HasAirConditioning *bool              `json:"has_air_conditioning,omitempty"`
	HasTV              *bool              `json:"has_tv,omitempty"`
	HasMinibar         *bool              `json:"has_minibar,omitempty"`
	HasSafe            *bool              `json:"has_safe,omitempty"`
	HasWifi            *bool              `json:"has_wifi,omitempty"`
	ImageURLs          *[]string          `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
