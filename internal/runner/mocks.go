package runner

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error) {
	called := m.Called(ctx, name, args)
	return called.Get(0).(Result), called.Error(1)
}
