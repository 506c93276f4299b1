package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/middleware"
	"hotel/internal/modules/admin"
	"hotel/internal/modules/auth"
	"hotel/internal/modules/blog"
	"hotel/internal/modules/message"
	"hotel/internal/modules/payment"
	"hotel/internal/modules/reservation"
	"hotel/internal/modules/room"
	"hotel/internal/modules/stats"
	"hotel/internal/modules/testimonial"
	jwtsvc "hotel/internal/pkg/jwt"
	"hotel/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router    *gin.Engine
	db        *gorm.DB
	publisher *events.Recorder
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	publisher := &events.Recorder{}

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService, nil))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, nil))
	roomHandler := room.NewHandler(room.NewService(roomRepo, nil))
	reservationHandler := reservation.NewHandler(reservation.NewService(reservationRepo, roomRepo, publisher, nil))
	paymentHandler := payment.NewHandler(payment.NewService(repository.NewPaymentRepository(db), reservationRepo, publisher, nil), nil)
	statsHandler := stats.NewHandler(stats.NewService(repository.NewReportRepository(db), nil))
	messageHandler := message.NewHandler(message.NewService(repository.NewMessageRepository(db), userRepo, message.NewHub(), nil))
	blogHandler := blog.NewHandler(blog.NewService(repository.NewBlogPostRepository(db), nil))
	testimonialHandler := testimonial.NewHandler(testimonial.NewService(repository.NewTestimonialRepository(db), nil))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	roomHandler.RegisterPublicRoutes(v1)
	reservationHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		roomHandler.RegisterProtectedRoutes(protected)
		reservationHandler.RegisterRoutes(protected)
		paymentHandler.RegisterProtectedRoutes(protected)
		messageHandler.RegisterRoutes(protected)
		statsHandler.RegisterRoutes(protected)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOrManager())
		adminHandler.RegisterRoutes(adminGroup)
	}
	blogHandler.RegisterRoutes(v1, protected)
	testimonialHandler.RegisterRoutes(v1, protected)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Username:     "admin",
		Email:        "admin@hotel.test",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Enabled:      true,
	}).Error, "Failed to create admin user")

	return &E2ETestSuite{router: r, db: db, publisher: publisher}
}

func (s *E2ETestSuite) do(t *testing.T, method, path string, body interface{}, token string) (int, *TestResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	if !resp.Success && resp.Error != nil {
		t.Logf("%s %s -> %d [%s] %s", method, path, w.Code, resp.Error.Code, resp.Error.Message)
	}
	return w.Code, &resp
}

func decode[T any](t *testing.T, resp *TestResponse) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}

type authData struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (s *E2ETestSuite) register(t *testing.T, username string) authData {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"username": username,
		"email":    username + "@mail.test",
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusCreated, code)
	return decode[authData](t, resp)
}

func (s *E2ETestSuite) login(t *testing.T, username, password string) authData {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, code)
	return decode[authData](t, resp)
}

type idData struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func TestFlow_RegisterAndProfile(t *testing.T) {
	suite := setupTestSuite(t)

	alice := suite.register(t, "alice")
	assert.NotEmpty(t, alice.Token)
	assert.Equal(t, "client", alice.Role)

	code, _ := suite.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice", "email": "other@mail.test", "password": "Password123!",
	}, "")
	assert.Equal(t, http.StatusConflict, code)

	code, _ = suite.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := suite.do(t, http.MethodGet, "/api/v1/users/me", nil, alice.Token)
	require.Equal(t, http.StatusOK, code)
	me := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "alice", me["username"])

	code, _ = suite.do(t, http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = suite.do(t, http.MethodGet, "/api/v1/admin/users", nil, alice.Token)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestFlow_BookingAndPayment(t *testing.T) {
	suite := setupTestSuite(t)

	adminAuth := suite.login(t, "admin", "admin123")
	alice := suite.register(t, "alice")
	bob := suite.register(t, "bob")

	code, _ := suite.do(t, http.MethodPost, "/api/v1/rooms", map[string]interface{}{
		"room_number": "101", "type": "deluxe", "capacity": 2, "price_per_night": 150,
	}, alice.Token)
	require.Equal(t, http.StatusForbidden, code)

	code, resp := suite.do(t, http.MethodPost, "/api/v1/rooms", map[string]interface{}{
		"room_number": "101", "type": "deluxe", "capacity": 2, "price_per_night": 150,
	}, adminAuth.Token)
	require.Equal(t, http.StatusCreated, code)
	roomID := decode[idData](t, resp).ID

	code, resp = suite.do(t, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d/availability?check_in=2030-01-10&check_out=2030-01-13", roomID), nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[map[string]interface{}](t, resp)["available"].(bool))

	code, resp = suite.do(t, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"room_id": roomID, "check_in_date": "2030-01-10", "check_out_date": "2030-01-13",
		"number_of_guests": 2, "total_price": 450,
	}, alice.Token)
	require.Equal(t, http.StatusCreated, code)
	aliceRes := decode[idData](t, resp)
	assert.Equal(t, "pending", aliceRes.Status)

	code, resp = suite.do(t, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"room_id": roomID, "check_in_date": "2030-01-12", "check_out_date": "2030-01-15",
		"number_of_guests": 1, "total_price": 450,
	}, bob.Token)
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	// Check-out day is free again.
	code, _ = suite.do(t, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"room_id": roomID, "check_in_date": "2030-01-13", "check_out_date": "2030-01-14",
		"number_of_guests": 1, "total_price": 150,
	}, bob.Token)
	require.Equal(t, http.StatusCreated, code)

	code, _ = suite.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", aliceRes.ID), nil, bob.Token)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = suite.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"reservation_id": aliceRes.ID, "amount": 450, "payment_method": "credit_card", "status": "completed",
	}, bob.Token)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = suite.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"reservation_id": aliceRes.ID, "amount": 450, "payment_method": "credit_card", "status": "completed",
	}, alice.Token)
	require.Equal(t, http.StatusCreated, code)

	code, resp = suite.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", aliceRes.ID), nil, alice.Token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "confirmed", decode[idData](t, resp).Status)

	assert.Contains(t, suite.publisher.Types(), events.PaymentCompleted)
	assert.Contains(t, suite.publisher.Types(), events.ReservationCreated)

	now := time.Now().UTC()
	code, resp = suite.do(t, http.MethodGet, fmt.Sprintf("/api/v1/stats/revenue/monthly?year=%d&month=%d", now.Year(), int(now.Month())), nil, adminAuth.Token)
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 450.0, decode[map[string]interface{}](t, resp)["revenue"].(float64), 0.001)

	code, resp = suite.do(t, http.MethodGet, "/api/v1/stats/reservations/monthly?year=2030&month=1", nil, adminAuth.Token)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, resp)["count"])

	code, _ = suite.do(t, http.MethodGet, "/api/v1/stats/dashboard", nil, alice.Token)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = suite.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/reservations/%d", aliceRes.ID), nil, alice.Token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", decode[idData](t, resp).Status)
}

func TestFlow_MessagesAndContent(t *testing.T) {
	suite := setupTestSuite(t)

	adminAuth := suite.login(t, "admin", "admin123")
	alice := suite.register(t, "alice")
	bob := suite.register(t, "bob")

	code, resp := suite.do(t, http.MethodPost, "/api/v1/messages", map[string]interface{}{
		"recipient_id": bob.UserID, "subject": "Hi", "content": "Dinner at eight?",
	}, alice.Token)
	require.Equal(t, http.StatusCreated, code)
	msgID := decode[idData](t, resp).ID

	code, resp = suite.do(t, http.MethodGet, "/api/v1/messages/unread/count", nil, bob.Token)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, resp)["count"])

	code, _ = suite.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/messages/%d/read", msgID), nil, alice.Token)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = suite.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/messages/%d/read", msgID), nil, bob.Token)
	require.Equal(t, http.StatusOK, code)

	code, _ = suite.do(t, http.MethodPost, "/api/v1/blog", map[string]interface{}{
		"title": "Spa week", "content": "Ten percent off.", "tags": []string{"spa"}, "published": true,
	}, alice.Token)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = suite.do(t, http.MethodPost, "/api/v1/blog", map[string]interface{}{
		"title": "Spa week", "content": "Ten percent off.", "tags": []string{"spa"}, "published": true,
	}, adminAuth.Token)
	require.Equal(t, http.StatusCreated, code)

	code, resp = suite.do(t, http.MethodGet, "/api/v1/blog/tag/SPA", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]interface{}](t, resp), 1)

	code, resp = suite.do(t, http.MethodPost, "/api/v1/testimonials", map[string]interface{}{
		"content": "Great stay", "rating": 5,
	}, alice.Token)
	require.Equal(t, http.StatusCreated, code)
	tmID := decode[idData](t, resp).ID

	code, _ = suite.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/testimonials/%d/approve", tmID), nil, adminAuth.Token)
	require.Equal(t, http.StatusOK, code)

	code, resp = suite.do(t, http.MethodGet, "/api/v1/stats/customer-satisfaction", nil, adminAuth.Token)
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 5.0, decode[map[string]interface{}](t, resp)["average_rating"].(float64), 0.001)

	code, resp = suite.do(t, http.MethodGet, "/api/v1/testimonials", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, resp)["total"])
}
