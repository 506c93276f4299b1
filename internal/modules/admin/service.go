package admin

import (
	"context"
	"errors"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"

	"gorm.io/gorm"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("user not found")
	ErrInvalidRole = errors.New("invalid role")
	ErrSelfChange  = errors.New("admins cannot change their own role or status")
)

type Service struct {
	userRepo UserRepository
	loggerf  func(format string, args ...interface{})
}

func NewService(userRepo UserRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{userRepo: userRepo, loggerf: loggerf}
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, caller access.Caller, role domain.UserRole, page, size int) ([]domain.User, int64, error) {
	if !access.CanAccess(caller, access.User, access.List) {
		return nil, 0, ErrForbidden
	}
	if role != "" && !role.Valid() {
		return nil, 0, ErrInvalidRole
	}
	return s.userRepo.List(ctx, role, page, size)
}

// ChangeRole promotes or demotes a user. Admin only.
func (s *Service) ChangeRole(ctx context.Context, caller access.Caller, userID int64, role domain.UserRole) (*domain.User, error) {
	if !access.CanAccess(caller, access.User, access.Update) {
		return nil, ErrForbidden
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if userID == caller.UserID {
		return nil, ErrSelfChange
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.loggerf("level=info msg=user role changed user_id=%d role=%s by_admin=%d", userID, role, caller.UserID)
	return s.load(ctx, userID)
}

// SetEnabled blocks or unblocks a user; a disabled user can no longer log in.
func (s *Service) SetEnabled(ctx context.Context, caller access.Caller, userID int64, enabled bool) (*domain.User, error) {
	if !access.CanAccess(caller, access.User, access.Update) {
		return nil, ErrForbidden
	}
	if userID == caller.UserID {
		return nil, ErrSelfChange
	}

	if err := s.userRepo.SetEnabled(ctx, userID, enabled); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.loggerf("level=info msg=user enabled flag changed user_id=%d enabled=%t by_admin=%d", userID, enabled, caller.UserID)
	return s.load(ctx, userID)
}

func (s *Service) load(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	return u, err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
