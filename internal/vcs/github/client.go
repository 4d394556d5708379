package github

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/vcs"
)

var _ vcs.PRDiffFetcher = (*APIClient)(nil)

type PullRequestsService interface {
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
}

// repoResolver supplies owner/repo of the current checkout for bare PR numbers.
type repoResolver interface {
	GetRepoInfo(ctx context.Context) (string, string, string, error)
}

// APIClient fetches pull request diffs from the GitHub REST API. References it
// cannot serve (enterprise hosts, unparsed input) go to the fallback.
type APIClient struct {
	prService PullRequestsService
	repos     repoResolver
	fallback  vcs.PRDiffFetcher
}

func NewAPIClient(token string, repos repoResolver, fallback vcs.PRDiffFetcher) *APIClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return NewAPIClientWithService(client.PullRequests, repos, fallback)
}

func NewAPIClientWithService(prService PullRequestsService, repos repoResolver, fallback vcs.PRDiffFetcher) *APIClient {
	return &APIClient{
		prService: prService,
		repos:     repos,
		fallback:  fallback,
	}
}

func (c *APIClient) FetchPRDiff(ctx context.Context, ref models.PRReference) (string, error) {
	if ref.UseRawURL() || !ref.HasNumber() {
		return c.delegate(ctx, ref)
	}

	owner, repo, err := c.resolveRepo(ctx, ref)
	if err != nil {
		logger.Warn(ctx, "could not resolve repository for API backend", "error", err)
		return c.delegate(ctx, ref)
	}

	logger.Debug(ctx, "fetching pull request diff with API", "owner", owner, "repo", repo, "pr_number", ref.Number)

	diff, resp, err := c.prService.GetRaw(ctx, owner, repo, ref.Number, github.RawOptions{Type: github.Diff})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return "", errors.ErrGitHubTokenInvalid.WithError(err)
		}
		// 406 means the diff is too large for the API; gh handles it.
		if resp != nil && resp.StatusCode == http.StatusNotAcceptable {
			return c.delegate(ctx, ref)
		}
		return "", errors.ErrGitHubAPI.WithError(err).WithContext("pr", ref.String())
	}

	return diff, nil
}

func (c *APIClient) resolveRepo(ctx context.Context, ref models.PRReference) (string, string, error) {
	if ref.HasRepo() {
		owner, repo, _ := strings.Cut(ref.Repo, "/")
		return owner, repo, nil
	}

	owner, repo, provider, err := c.repos.GetRepoInfo(ctx)
	if err != nil {
		return "", "", err
	}
	if provider != "github" {
		return "", "", errors.ErrUnsupportedPRHost.WithContext("provider", provider)
	}
	return owner, repo, nil
}

func (c *APIClient) delegate(ctx context.Context, ref models.PRReference) (string, error) {
	if c.fallback == nil {
		return "", errors.ErrUnsupportedPRHost.WithContext("pr", ref.String())
	}
	return c.fallback.FetchPRDiff(ctx, ref)
}
