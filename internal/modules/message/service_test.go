package message

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel/internal/database"
	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/jwt"
	"hotel/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc   *Service
	hub   *Hub
	alice access.Caller
	bob   access.Caller
	carol access.Caller
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	users := repository.NewUserRepository(db)
	callers := make([]access.Caller, 0, 3)
	for _, name := range []string{"alice", "bob", "carol"} {
		u := &domain.User{Username: name, Email: name + "@hotel.test", PasswordHash: "x", Role: domain.RoleClient, Enabled: true}
		require.NoError(t, users.Create(context.Background(), u))
		callers = append(callers, access.Caller{UserID: u.ID, Role: u.Role})
	}

	hub := NewHub()
	t.Cleanup(hub.Close)
	return &fixture{
		svc:   NewService(repository.NewMessageRepository(db), users, hub, nil),
		hub:   hub,
		alice: callers[0],
		bob:   callers[1],
		carol: callers[2],
	}
}

func (f *fixture) send(t *testing.T, from, to access.Caller, content string) *domain.Message {
	t.Helper()
	m, err := f.svc.Send(context.Background(), from, SendMessageRequest{RecipientID: to.UserID, Subject: "Hi", Content: content})
	require.NoError(t, err)
	return m
}

func TestSend_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Send(ctx, f.alice, SendMessageRequest{RecipientID: f.bob.UserID, Content: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Send(ctx, f.alice, SendMessageRequest{RecipientID: 999, Content: "hello"})
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestGet_SenderAndRecipientOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.send(t, f.alice, f.bob, "room 12 is lovely")

	got, err := f.svc.Get(ctx, f.bob, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "room 12 is lovely", got.Content)

	_, err = f.svc.Get(ctx, f.alice, m.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, f.carol, m.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Get(ctx, access.Caller{UserID: 77, Role: domain.RoleAdmin}, m.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Get(ctx, f.bob, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkRead_RecipientOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.send(t, f.alice, f.bob, "ping")

	_, err := f.svc.MarkRead(ctx, f.alice, m.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	n, err := f.svc.CountUnread(ctx, f.bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	read, err := f.svc.MarkRead(ctx, f.bob, m.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)
	require.NotNil(t, read.ReadAt)
	first := *read.ReadAt

	again, err := f.svc.MarkRead(ctx, f.bob, m.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(*again.ReadAt))

	n, err = f.svc.CountUnread(ctx, f.bob)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.send(t, f.alice, f.bob, fmt.Sprintf("a->b %d", i))
	}
	f.send(t, f.bob, f.alice, "b->a")
	f.send(t, f.carol, f.bob, "c->b")

	received, total, err := f.svc.Received(ctx, f.bob, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, received, 2)

	sent, total, err := f.svc.Sent(ctx, f.alice, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, sent, 3)

	all, err := f.svc.ListForUser(ctx, f.alice)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	conv, err := f.svc.Conversation(ctx, f.bob, f.alice.UserID)
	require.NoError(t, err)
	require.Len(t, conv, 4)
	assert.Equal(t, "a->b 0", conv[0].Content)
	assert.Equal(t, "b->a", conv[3].Content)
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	m := f.send(t, f.alice, f.bob, "bye")

	assert.ErrorIs(t, f.svc.Delete(ctx, f.carol, m.ID), ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, f.bob, m.ID))

	_, err := f.svc.Get(ctx, f.alice, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSend_PushesToOnlineRecipient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)

	jwtSvc := jwt.New("test-secret", time.Hour)
	token, err := jwtSvc.GenerateToken(f.bob.UserID, "bob", string(domain.RoleClient))
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws/messages", NewWSHandler(f.hub, jwtSvc, nil).HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/messages"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return f.hub.IsOnline(f.bob.UserID) }, time.Second, 10*time.Millisecond)

	m := f.send(t, f.alice, f.bob, "your room is ready")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventNewMessage, ev.Type)
	require.NotNil(t, ev.Message)
	assert.Equal(t, m.ID, ev.Message.ID)
	assert.Equal(t, "your room is ready", ev.Message.Content)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventPong, ev.Type)
}

func TestHub_OfflineUser(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.SendToUser(1, Event{Type: EventNewMessage}))
	assert.False(t, hub.IsOnline(1))
	assert.Zero(t, hub.GetOnlineCount())
}
