package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPrompter 确认框和提示框的模拟实现
type MockPrompter struct {
	mock.Mock
}

// Confirm 确认的模拟实现
func (m *MockPrompter) Confirm(message string) bool {
	args := m.Called(message)
	return args.Bool(0)
}

// Alert 提示的模拟实现
func (m *MockPrompter) Alert(message string) {
	m.Called(message)
}
