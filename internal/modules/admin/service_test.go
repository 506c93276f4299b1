package admin

import (
	"context"
	"testing"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

/* ==================== MOCKS ==================== */

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role domain.UserRole, page, size int) ([]domain.User, int64, error) {
	args := m.Called(ctx, role, page, size)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role domain.UserRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return m.Called(ctx, id, enabled).Error(0)
}

/* ==================== TESTS ==================== */

var (
	admin   = access.Caller{UserID: 1, Role: domain.RoleAdmin}
	manager = access.Caller{UserID: 2, Role: domain.RoleManager}
)

func TestChangeRole_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("UpdateRole", mock.Anything, int64(5), domain.RoleReceptionist).Return(nil)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Role: domain.RoleReceptionist}, nil)

	u, err := NewService(repo, nil).ChangeRole(context.Background(), admin, 5, domain.RoleReceptionist)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleReceptionist, u.Role)
	repo.AssertExpectations(t)
}

func TestChangeRole_Rules(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("UpdateRole", mock.Anything, int64(404), domain.RoleManager).Return(gorm.ErrRecordNotFound)
	svc := NewService(repo, nil)

	_, err := svc.ChangeRole(context.Background(), manager, 5, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ChangeRole(context.Background(), admin, 5, "overlord")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.ChangeRole(context.Background(), admin, admin.UserID, domain.RoleClient)
	assert.ErrorIs(t, err, ErrSelfChange)

	_, err = svc.ChangeRole(context.Background(), admin, 404, domain.RoleManager)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetEnabled(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SetEnabled", mock.Anything, int64(5), false).Return(nil)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Enabled: false}, nil)

	u, err := NewService(repo, nil).SetEnabled(context.Background(), admin, 5, false)

	require.NoError(t, err)
	assert.False(t, u.Enabled)
}

func TestListUsers(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("List", mock.Anything, domain.RoleClient, 1, 10).Return([]domain.User{{ID: 7}}, int64(1), nil)
	svc := NewService(repo, nil)

	users, total, err := svc.ListUsers(context.Background(), manager, domain.RoleClient, 1, 10)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(1), total)

	_, _, err = svc.ListUsers(context.Background(), access.Caller{UserID: 9, Role: domain.RoleClient}, "", 1, 10)
	assert.ErrorIs(t, err, ErrForbidden)
}
