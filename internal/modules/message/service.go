package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	messages MessageRepository
	users    UserReader
	notifier Notifier
	loggerf  func(format string, args ...interface{})
	now      func() time.Time
}

func NewService(messages MessageRepository, users UserReader, notifier Notifier, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		messages: messages,
		users:    users,
		notifier: notifier,
		loggerf:  loggerf,
		now:      time.Now,
	}
}

// Send stores the message and pushes it to the recipient if they are online.
func (s *Service) Send(ctx context.Context, caller access.Caller, req SendMessageRequest) (*domain.Message, error) {
	req.Content = strings.TrimSpace(req.Content)
	req.Subject = strings.TrimSpace(req.Subject)
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}
	if caller.UserID == 0 {
		return nil, ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	m := &domain.Message{
		SenderID:    caller.UserID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Content:     req.Content,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=message sent id=%d sender_id=%d recipient_id=%d", m.ID, m.SenderID, m.RecipientID)

	if s.notifier != nil {
		if s.notifier.SendToUser(m.RecipientID, Event{Type: EventNewMessage, Message: toResponse(m)}) {
			s.loggerf("level=info msg=message pushed id=%d recipient_id=%d", m.ID, m.RecipientID)
		}
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id int64) (*domain.Message, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Message, access.Read, m.SenderID, m.RecipientID) {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *Service) Received(ctx context.Context, caller access.Caller, page, size int) ([]domain.Message, int64, error) {
	return s.messages.ListReceived(ctx, caller.UserID, page, size)
}

func (s *Service) Sent(ctx context.Context, caller access.Caller, page, size int) ([]domain.Message, int64, error) {
	return s.messages.ListSent(ctx, caller.UserID, page, size)
}

func (s *Service) ListForUser(ctx context.Context, caller access.Caller) ([]domain.Message, error) {
	return s.messages.ListForUser(ctx, caller.UserID)
}

func (s *Service) Conversation(ctx context.Context, caller access.Caller, otherID int64) ([]domain.Message, error) {
	return s.messages.Conversation(ctx, caller.UserID, otherID)
}

func (s *Service) CountUnread(ctx context.Context, caller access.Caller) (int64, error) {
	return s.messages.CountUnread(ctx, caller.UserID)
}

// MarkRead is idempotent; the first read time is kept.
func (s *Service) MarkRead(ctx context.Context, caller access.Caller, id int64) (*domain.Message, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Message, access.MarkRead, m.RecipientID) {
		return nil, ErrForbidden
	}
	if m.Read {
		return m, nil
	}

	now := s.now().UTC()
	m.Read = true
	m.ReadAt = &now
	if err := s.messages.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id int64) error {
	m, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanAccess(caller, access.Message, access.Delete, m.SenderID, m.RecipientID) {
		return ErrForbidden
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}
	s.loggerf("level=info msg=message deleted id=%d by=%d", id, caller.UserID)
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Message, error) {
	m, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
