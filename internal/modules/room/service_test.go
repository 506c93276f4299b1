package room

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin   = access.Caller{UserID: 1, Role: domain.RoleAdmin}
	manager = access.Caller{UserID: 2, Role: domain.RoleManager}
	guest   = access.Caller{UserID: 9, Role: domain.RoleClient}
)

func setup(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewService(repository.NewRoomRepository(db), nil), db
}

func createRoom(t *testing.T, svc *Service, number string, roomType domain.RoomType, capacity int) *domain.Room {
	t.Helper()
	room, err := svc.Create(context.Background(), manager, CreateRoomRequest{
		RoomNumber:    number,
		Type:          roomType,
		Capacity:      capacity,
		PricePerNight: 120.456,
		HasWifi:       true,
		ImageURLs:     []string{"https://img.example.com/" + number + ".jpg"},
	})
	require.NoError(t, err)
	return room
}

func TestCreate_DefaultsAndRounding(t *testing.T) {
	svc, _ := setup(t)

	room := createRoom(t, svc, "101", domain.RoomStandard, 2)

	assert.NotZero(t, room.ID)
	assert.Equal(t, domain.RoomAvailable, room.Status)
	assert.Equal(t, 120.46, room.PricePerNight)

	loaded, err := svc.Get(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/101.jpg"}, []string(loaded.ImageURLs))
	assert.True(t, loaded.HasWifi)
}

func TestCreate_Rules(t *testing.T) {
	svc, _ := setup(t)
	createRoom(t, svc, "101", domain.RoomStandard, 2)

	_, err := svc.Create(context.Background(), guest, CreateRoomRequest{RoomNumber: "102", Type: domain.RoomSuite, Capacity: 2, PricePerNight: 10})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(context.Background(), admin, CreateRoomRequest{RoomNumber: "101", Type: domain.RoomSuite, Capacity: 2, PricePerNight: 10})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(context.Background(), admin, CreateRoomRequest{RoomNumber: "103", Type: "penthouse", Capacity: 0, PricePerNight: 10})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "type")
	assert.Contains(t, err.Error(), "capacity")
}

func TestUpdate_Partial(t *testing.T) {
	svc, _ := setup(t)
	room := createRoom(t, svc, "101", domain.RoomStandard, 2)
	createRoom(t, svc, "102", domain.RoomStandard, 2)

	status := domain.RoomMaintenance
	updated, err := svc.Update(context.Background(), manager, room.ID, UpdateRoomRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, updated.Status)
	assert.Equal(t, "101", updated.RoomNumber)
	assert.Equal(t, 2, updated.Capacity)

	taken := "102"
	_, err = svc.Update(context.Background(), manager, room.ID, UpdateRoomRequest{RoomNumber: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(context.Background(), manager, 999, UpdateRoomRequest{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, db := setup(t)
	free := createRoom(t, svc, "101", domain.RoomStandard, 2)
	booked := createRoom(t, svc, "102", domain.RoomStandard, 2)

	require.NoError(t, db.Create(&domain.Reservation{
		ReservationNumber: "RES-00000001",
		UserID:            9,
		RoomID:            booked.ID,
		CheckInDate:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:      time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		NumberOfGuests:    1,
		Status:            domain.ReservationCancelled,
	}).Error)

	assert.ErrorIs(t, svc.Delete(context.Background(), manager, free.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, booked.ID), ErrConflict)
	require.NoError(t, svc.Delete(context.Background(), admin, free.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), admin, free.ID), ErrNotFound)
}

func TestListings(t *testing.T) {
	svc, db := setup(t)
	r101 := createRoom(t, svc, "101", domain.RoomStandard, 2)
	createRoom(t, svc, "201", domain.RoomSuite, 4)
	createRoom(t, svc, "301", domain.RoomFamily, 5)

	suites, err := svc.ListByType(context.Background(), domain.RoomSuite)
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "201", suites[0].RoomNumber)

	big, err := svc.ListByCapacity(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, big, 2)

	_, err = svc.ListByType(context.Background(), "cave")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, db.Create(&domain.Reservation{
		ReservationNumber: "RES-00000002",
		UserID:            9,
		RoomID:            r101.ID,
		CheckInDate:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		NumberOfGuests:    1,
		Status:            domain.ReservationConfirmed,
	}).Error)

	available, err := svc.FindAvailable(context.Background(),
		time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	assert.Len(t, available, 2)

	// check-out day is free again
	available, err = svc.FindAvailable(context.Background(),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), domain.RoomStandard)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "101", available[0].RoomNumber)
}

func TestHandler_CreateRequiresRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setup(t)
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", guest.UserID)
		c.Set("role", string(guest.Role))
		c.Next()
	})
	h.RegisterPublicRoutes(api)
	h.RegisterProtectedRoutes(api)

	body, _ := json.Marshal(CreateRoomRequest{RoomNumber: "101", Type: domain.RoomStandard, Capacity: 2, PricePerNight: 90})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/rooms", bytes.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/77", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/available?check_in=2024-06-10&check_out=2024-06-09", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
