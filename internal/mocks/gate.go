package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Gate is a mock of middleware.Gate.
type Gate struct {
	mock.Mock
}

// NewGate creates a Gate mock that asserts expectations on cleanup.
func NewGate(t interface {
	mock.TestingT
	Cleanup(func())
}) *Gate {
	m := &Gate{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Gate) Authorize(ctx context.Context, sessionID string) (uuid.UUID, error) {
	ret := m.Called(ctx, sessionID)
	id, _ := ret.Get(0).(uuid.UUID)
	return id, ret.Error(1)
}
