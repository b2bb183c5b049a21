package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sessiongate/internal/model"
)

// SessionStore is a mock of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

var _ model.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore mock that asserts expectations on cleanup.
func NewSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionStore) Put(ctx context.Context, session model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionStore) Get(ctx context.Context, sessionID string) (model.Session, error) {
	ret := m.Called(ctx, sessionID)
	s, _ := ret.Get(0).(model.Session)
	return s, ret.Error(1)
}

func (m *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}
