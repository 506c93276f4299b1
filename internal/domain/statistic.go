package domain

import "time"

type StatisticType string

const (
	StatRevenue              StatisticType = "revenue"
	StatOccupancyRate        StatisticType = "occupancy_rate"
	StatAverageStayDuration  StatisticType = "average_stay_duration"
	StatBookingsCount        StatisticType = "bookings_count"
	StatCancellationRate     StatisticType = "cancellation_rate"
	StatCustomerSatisfaction StatisticType = "customer_satisfaction"
)

func (t StatisticType) Valid() bool {
	switch t {
	case StatRevenue, StatOccupancyRate, StatAverageStayDuration,
		StatBookingsCount, StatCancellationRate, StatCustomerSatisfaction:
		return true
	}
	return false
}

// Statistic is a monthly snapshot; Date is always the first day of the month.
// Exactly one of the value columns is populated depending on Type.
type Statistic struct {
	ID              int64         `json:"id" gorm:"primaryKey"`
	Type            StatisticType `json:"type" gorm:"size:32;not null;uniqueIndex:idx_statistic_type_date"`
	Date            time.Time     `json:"date" gorm:"column:stat_date;type:date;not null;uniqueIndex:idx_statistic_type_date"`
	Value           *float64      `json:"value,omitempty" gorm:"type:decimal(12,2)"`
	ValueString     *string       `json:"value_string,omitempty"`
	ValueInteger    *int64        `json:"value_integer,omitempty"`
	PercentageValue *float64      `json:"percentage_value,omitempty" gorm:"type:decimal(5,2)"`
	CreatedAt       time.Time     `json:"created_at"`
}
