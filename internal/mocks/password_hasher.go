package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sessiongate/internal/model"
)

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

var _ model.PasswordHasher = (*PasswordHasher)(nil)

// NewPasswordHasher creates a PasswordHasher mock that asserts expectations on cleanup.
func NewPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *PasswordHasher) Hash(plaintext string) (string, error) {
	ret := m.Called(plaintext)
	return ret.String(0), ret.Error(1)
}

func (m *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	ret := m.Called(plaintext, hash)
	return ret.Bool(0), ret.Error(1)
}
