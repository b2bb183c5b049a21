package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sessiongate/internal/model"
)

// AuthService is a mock of handler.AuthService.
type AuthService struct {
	mock.Mock
}

// NewAuthService creates an AuthService mock that asserts expectations on cleanup.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthService) Register(ctx context.Context, username, password string) (model.User, model.Session, error) {
	ret := m.Called(ctx, username, password)
	u, _ := ret.Get(0).(model.User)
	s, _ := ret.Get(1).(model.Session)
	return u, s, ret.Error(2)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (model.Session, error) {
	ret := m.Called(ctx, username, password)
	s, _ := ret.Get(0).(model.Session)
	return s, ret.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *AuthService) Profile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	ret := m.Called(ctx, userID)
	u, _ := ret.Get(0).(model.User)
	return u, ret.Error(1)
}
