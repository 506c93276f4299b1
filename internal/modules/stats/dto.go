package stats

import (
	"time"

	"hotel/internal/domain"
)

type RevenueResponse struct {
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Revenue float64 `json:"revenue"`
}

type YearlyRevenueResponse struct {
	Year   int             `json:"year"`
	Months map[int]float64 `json:"months"`
	Total  float64         `json:"total"`
}

type OccupancyResponse struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	TotalRooms      int64   `json:"total_rooms"`
	AvailableNights int64   `json:"available_nights"`
	BookedNights    int64   `json:"booked_nights"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

type ReservationsCountResponse struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type SatisfactionResponse struct {
	AverageRating *float64 `json:"average_rating"`
}

type DashboardResponse struct {
	Date                 string   `json:"date"`
	MonthlyRevenue       float64  `json:"monthly_revenue"`
	MonthlyOccupancyRate float64  `json:"monthly_occupancy_rate"`
	TotalRooms           int64    `json:"total_rooms"`
	AvailableRoomsToday  int64    `json:"available_rooms_today"`
	CheckInsToday        int64    `json:"check_ins_today"`
	CheckOutsToday       int64    `json:"check_outs_today"`
	CustomerSatisfaction *float64 `json:"customer_satisfaction"`
}

type SnapshotRequest struct {
	Year  int `json:"year" validate:"gte=2000,lte=9999"`
	Month int `json:"month" validate:"gte=1,lte=12"`
}

type StatisticResponse struct {
	Type            domain.StatisticType `json:"type"`
	Date            string               `json:"date"`
	Value           *float64             `json:"value,omitempty"`
	ValueString     *string              `json:"value_string,omitempty"`
	ValueInteger    *int64               `json:"value_integer,omitempty"`
	PercentageValue *float64             `json:"percentage_value,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func toStatisticResponses(list []domain.Statistic) []StatisticResponse {
	out := make([]StatisticResponse, 0, len(list))
	for _, s := range list {
		out = append(out, StatisticResponse{
			Type:            s.Type,
			Date:            s.Date.Format(domain.DateLayout),
			Value:           s.Value,
			ValueString:     s.ValueString,
			ValueInteger:    s.ValueInteger,
			PercentageValue: s.PercentageValue,
			CreatedAt:       s.CreatedAt,
		})
	}
	return out
}
