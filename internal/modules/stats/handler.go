package stats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/stats")
	{
		stats.GET("/revenue/monthly", h.MonthlyRevenue)
		stats.GET("/revenue/yearly", h.YearlyRevenue)
		stats.GET("/revenue/period", h.PeriodRevenue)
		stats.GET("/occupancy", h.Occupancy)
		stats.GET("/reservations/monthly", h.MonthlyReservations)
		stats.GET("/customer-satisfaction", h.CustomerSatisfaction)
		stats.GET("/dashboard", h.Dashboard)
		stats.GET("/by-type", h.ByType)
		stats.POST("/snapshot", h.Snapshot)
	}
}

// MonthlyRevenue godoc
// @Summary		Revenue for a calendar month
// @Tags		Statistics
// @Security	BearerAuth
// @Param		year	query	int	true	"Year"
// @Param		month	query	int	true	"Month (1-12)"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/stats/revenue/monthly [get]
func (h *Handler) MonthlyRevenue(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	revenue, err := h.service.MonthlyRevenue(c.Request.Context(), access.FromContext(c), year, month)
	if err != nil {
		writeError(c, err)
		return
	}
	from, to := domain.MonthRange(year, time.Month(month))
	response.Success(c, http.StatusOK, RevenueResponse{
		Start:   from.Format(domain.DateLayout),
		End:     to.AddDate(0, 0, -1).Format(domain.DateLayout),
		Revenue: revenue,
	})
}

func (h *Handler) YearlyRevenue(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		badQuery(c, "year", "must be a number")
		return
	}
	months, err := h.service.YearlyRevenueByMonth(c.Request.Context(), access.FromContext(c), year)
	if err != nil {
		writeError(c, err)
		return
	}
	var total float64
	for _, v := range months {
		total += v
	}
	response.Success(c, http.StatusOK, YearlyRevenueResponse{Year: year, Months: months, Total: domain.Round2(total)})
}

// PeriodRevenue handles GET /stats/revenue/period?start=&end= (both dates inclusive).
func (h *Handler) PeriodRevenue(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	revenue, err := h.service.PeriodRevenue(c.Request.Context(), access.FromContext(c), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, RevenueResponse{
		Start:   start.Format(domain.DateLayout),
		End:     end.Format(domain.DateLayout),
		Revenue: revenue,
	})
}

// Occupancy godoc
// @Summary		Occupancy rate for a date range
// @Description	Booked room-nights over available room-nights between start and end inclusive.
// @Tags		Statistics
// @Security	BearerAuth
// @Param		start	query	string	true	"Start date (YYYY-MM-DD)"
// @Param		end		query	string	true	"End date (YYYY-MM-DD)"
// @Success		200	{object}	map[string]interface{}
// @Router		/stats/occupancy [get]
func (h *Handler) Occupancy(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	occ, err := h.service.OccupancyRate(c.Request.Context(), access.FromContext(c), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, occ)
}

func (h *Handler) MonthlyReservations(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	count, err := h.service.MonthlyReservationsCount(c.Request.Context(), access.FromContext(c), year, month)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ReservationsCountResponse{Year: year, Month: month, Count: count})
}

func (h *Handler) CustomerSatisfaction(c *gin.Context) {
	avg, err := h.service.CustomerSatisfaction(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SatisfactionResponse{AverageRating: avg})
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context(), access.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// ByType handles GET /stats/by-type?type=&start=&end=
func (h *Handler) ByType(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	list, err := h.service.StatisticsByType(c.Request.Context(), access.FromContext(c), domain.StatisticType(c.Query("type")), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toStatisticResponses(list))
}

func (h *Handler) Snapshot(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	list, err := h.service.SaveMonthlySnapshot(c.Request.Context(), access.FromContext(c), req.Year, req.Month)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toStatisticResponses(list))
}

func yearMonth(c *gin.Context) (year, month int, ok bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		badQuery(c, "year", "must be a number")
		return 0, 0, false
	}
	month, err = strconv.Atoi(c.Query("month"))
	if err != nil {
		badQuery(c, "month", "must be a number")
		return 0, 0, false
	}
	return year, month, true
}

func dateRange(c *gin.Context) (start, end time.Time, ok bool) {
	start, err := domain.ParseDate(c.Query("start"))
	if err != nil {
		badQuery(c, "start", "must be a date in YYYY-MM-DD format")
		return start, end, false
	}
	end, err = domain.ParseDate(c.Query("end"))
	if err != nil {
		badQuery(c, "end", "must be a date in YYYY-MM-DD format")
		return start, end, false
	}
	return start, end, true
}

func badQuery(c *gin.Context, field, msg string) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", map[string]string{field: msg})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Validation(c, err)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin or manager access required")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute statistics")
	}
}
