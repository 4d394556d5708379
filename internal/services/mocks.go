package services

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"
)

type MockReleasesService struct {
	mock.Mock
}

func (m *MockReleasesService) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	args := m.Called(ctx, owner, repo)
	var release *github.RepositoryRelease
	if r := args.Get(0); r != nil {
		release = r.(*github.RepositoryRelease)
	}
	return release, nil, args.Error(1)
}
