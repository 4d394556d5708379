package clipboard

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Copy(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}
