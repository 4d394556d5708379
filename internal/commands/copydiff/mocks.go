package copydiff

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Tomas-vilte/diffclip/internal/models"
)

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) StagedDiff(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) WorkingDiff(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) ShowCommit(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) BranchDiff(ctx context.Context, base string) (string, error) {
	args := m.Called(ctx, base)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) RecentCommits(ctx context.Context, count int) ([]models.Commit, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockGitService) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) FirstExistingRef(ctx context.Context, candidates []string) (string, bool) {
	args := m.Called(ctx, candidates)
	return args.String(0), args.Bool(1)
}
