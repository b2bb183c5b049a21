package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sessiongate/internal/model"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

var _ model.SecurityLayer = (*SecurityLayer)(nil)

// NewSecurityLayer creates a SecurityLayer mock that asserts expectations on cleanup.
func NewSecurityLayer(t interface {
	mock.TestingT
	Cleanup(func())
}) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SecurityLayer) Listen(network, addr string) (net.Listener, error) {
	ret := m.Called(network, addr)
	ln, _ := ret.Get(0).(net.Listener)
	return ln, ret.Error(1)
}
