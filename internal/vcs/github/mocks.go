package github

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"

	"github.com/Tomas-vilte/diffclip/internal/models"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*github.Response), args.Error(2)
}

type MockRepoResolver struct {
	mock.Mock
}

func (m *MockRepoResolver) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.String(2), args.Error(3)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchPRDiff(ctx context.Context, ref models.PRReference) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
