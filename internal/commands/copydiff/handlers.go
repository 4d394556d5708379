package copydiff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/regex"
	"github.com/Tomas-vilte/diffclip/internal/ui"
	"github.com/Tomas-vilte/diffclip/internal/vcs/pullref"
)

// Handler collects whatever input its source needs and retrieves the diff.
// ok is false when the user backed out; the loop then shows the menu again
// without printing anything.
type Handler interface {
	Fetch(ctx context.Context) (result models.DiffResult, ok bool, err error)
}

type stagedHandler struct{ d *Deps }

func (h stagedHandler) Fetch(ctx context.Context) (models.DiffResult, bool, error) {
	res, err := h.d.retrieve(ctx, models.DiffRequest{Kind: models.SourceStaged})
	return res, true, err
}

type workingHandler struct{ d *Deps }

func (h workingHandler) Fetch(ctx context.Context) (models.DiffResult, bool, error) {
	res, err := h.d.retrieve(ctx, models.DiffRequest{Kind: models.SourceWorking})
	return res, true, err
}

type commitHandler struct{ d *Deps }

func (h commitHandler) Fetch(ctx context.Context) (models.DiffResult, bool, error) {
	d := h.d

	commits, err := d.Git.RecentCommits(ctx, d.Config.CommitCount)
	if err != nil {
		if missingTool(err) {
			return models.DiffResult{}, false, err
		}
		logFailure(ctx, "recent commits unavailable", err)
	}
	if len(commits) == 0 {
		ui.PrintWarning(d.out(), d.msg("commit.none_found", nil))
		return models.DiffResult{}, false, nil
	}

	_, _ = fmt.Fprintf(d.out(), "0. %s\n", d.msg("menu.back", nil))
	for i, c := range commits {
		_, _ = fmt.Fprintf(d.out(), "%d. %s\n", i+1, c)
	}

	n, err := d.Prompter.ReadChoice(d.msg("prompt.select_commit", nil), len(commits))
	if err != nil {
		return models.DiffResult{}, false, err
	}
	if n == 0 {
		return models.DiffResult{}, false, nil
	}

	res, err := d.retrieve(ctx, models.DiffRequest{
		Kind:    models.SourceCommit,
		Commits: []string{commits[n-1].Hash},
	})
	return res, true, err
}

type commitsHandler struct{ d *Deps }

func (h commitsHandler) Fetch(ctx context.Context) (models.DiffResult, bool, error) {
	d := h.d

	line, err := d.Prompter.ReadLine(d.msg("commits.prompt", nil))
	if err != nil {
		return models.DiffResult{}, false, err
	}

	ids := parseCommitList(line)
	if len(ids) == 0 {
		ui.PrintWarning(d.out(), d.msg("commits.none_entered", nil))
		return models.DiffResult{}, false, nil
	}

	res, err := d.retrieve(ctx, models.DiffRequest{Kind: models.SourceCommits, Commits: ids})
	return res, true, err
}

type branchHandler struct{ d *Deps }

func (h branchHandler) Fetch(ctx context.Context) (models.DiffResult, bool, error) {
	d := h.d

	branch, err := d.Git.GetCurrentBranch(ctx)
	if err != nil {
		if missingTool(err) {
			return models.DiffResult{}, false, err
		}
		// detached HEAD still has a tip to diff
		logFailure(ctx, "current branch unknown", err)
		branch = "HEAD"
	}
	ui.PrintInfo(d.out(), d.msg("branch.current", map[string]interface{}{"Branch": branch}))

	var base string
	if candidate, found := d.Git.FirstExistingRef(ctx, d.Config.BaseCandidates); found {
		line, err := d.Prompter.ReadLine(d.msg("branch.base_prompt_default", map[string]interface{}{"Base": candidate}))
		if err != nil {
			return models.DiffResult{}, false, err
		}
		base = candidate
		if line != "" {
			base = line
		}
	} else {
		line, err := d.Prompter.ReadLine(d.msg("branch.base_prompt", nil))
		if err != nil {
			return models.DiffResult{}, false, err
		}
		if line == "" {
			ui.PrintWarning(d.out(), d.msg("branch.no_base", nil))
			return models.DiffResult{}, false, nil
		}
		base = line
	}

	res, err := d.retrieve(ctx, models.DiffRequest{Kind: models.SourceBranch, Base: base, Branch: branch})
	return res, true, err
}

type pullRequestHandler struct{ d *Deps }

func (h pullRequestHandler) Fetch(ctx context.Context) (models.DiffResult, bool, error) {
	d := h.d

	line, err := d.Prompter.ReadLine(d.msg("pr.prompt", nil))
	if err != nil {
		return models.DiffResult{}, false, err
	}
	if line == "" {
		ui.PrintWarning(d.out(), d.msg("pr.none_entered", nil))
		return models.DiffResult{}, false, nil
	}

	ref := pullref.Parse(line)
	res, err := d.retrieve(ctx, models.DiffRequest{Kind: models.SourcePullRequest, PR: &ref})
	return res, true, err
}

func parseCommitList(line string) []string {
	var ids []string
	for _, id := range regex.CommitList.Split(strings.TrimSpace(line), -1) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// missingTool reports errors that would fail every retrieval the same way, so
// they are shown to the user instead of being folded into an empty diff.
func missingTool(err error) bool {
	return errors.Is(err, domainErrors.ErrGitNotInstalled) || errors.Is(err, domainErrors.ErrGHNotInstalled)
}

func logFailure(ctx context.Context, msg string, err error) {
	args := []any{"error", err}
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) && appErr.Stderr() != "" {
		args = append(args, "stderr", appErr.Stderr())
	}
	logger.Debug(ctx, msg, args...)
}
