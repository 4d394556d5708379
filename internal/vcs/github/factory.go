package github

import (
	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/runner"
	"github.com/Tomas-vilte/diffclip/internal/vcs"
)

// NewPRDiffFetcher picks the backend configured in cfg. The API backend needs a
// token; without one it silently stays on gh.
func NewPRDiffFetcher(cfg *config.Config, r runner.Runner, repos repoResolver) vcs.PRDiffFetcher {
	cli := NewCLIClient(r)
	if cfg.PRBackend != config.BackendAPI {
		return cli
	}

	token := cfg.GitHubToken()
	if token == "" {
		return cli
	}
	return NewAPIClient(token, repos, cli)
}
