package copydiff

import (
	"context"
	"io"

	"github.com/Tomas-vilte/diffclip/internal/clipboard"
	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/ui"
	"github.com/Tomas-vilte/diffclip/internal/vcs"
)

// gitService is the part of git.GitService the loop needs.
type gitService interface {
	StagedDiff(ctx context.Context) (string, error)
	WorkingDiff(ctx context.Context) (string, error)
	ShowCommit(ctx context.Context, id string) (string, error)
	BranchDiff(ctx context.Context, base string) (string, error)
	RecentCommits(ctx context.Context, count int) ([]models.Commit, error)
	GetCurrentBranch(ctx context.Context) (string, error)
	FirstExistingRef(ctx context.Context, candidates []string) (string, bool)
}

// Deps is everything one session of the loop works with. Nothing in this
// package keeps state outside of it.
type Deps struct {
	Git       gitService
	PRs       vcs.PRDiffFetcher
	Clipboard clipboard.Sink
	Prompter  *ui.Prompter
	T         *i18n.Translations
	Config    *config.Config

	// ShowSummary prints the changed files tree after each copy.
	ShowSummary bool
}

func (d *Deps) out() io.Writer {
	return d.Prompter.Out
}

func (d *Deps) msg(id string, data map[string]interface{}) string {
	return d.T.GetMessage(id, 0, data)
}
