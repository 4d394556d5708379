package copydiff

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/ui"
)

// retrieve runs the command behind req. A failed command gives an empty
// result, like a command that printed nothing; only a missing executable is
// returned as an error.
func (d *Deps) retrieve(ctx context.Context, req models.DiffRequest) (models.DiffResult, error) {
	ctx = logger.With(ctx, "source", string(req.Kind))

	var (
		res = models.DiffResult{Kind: req.Kind}
		err error
	)

	switch req.Kind {
	case models.SourceStaged:
		res.SuccessMessage = d.msg("staged.success", nil)
		res.EmptyMessage = d.msg("diff.empty", nil)
		res.Diff, err = d.Git.StagedDiff(ctx)

	case models.SourceWorking:
		res.SuccessMessage = d.msg("working.success", nil)
		res.EmptyMessage = d.msg("diff.empty", nil)
		res.Diff, err = d.Git.WorkingDiff(ctx)

	case models.SourceCommit:
		hash := req.Commits[0]
		res.SuccessMessage = d.msg("commit.success", map[string]interface{}{"Hash": hash})
		res.EmptyMessage = d.msg("diff.empty", nil)
		res.Diff, err = d.Git.ShowCommit(ctx, hash)

	case models.SourceCommits:
		return d.retrieveCommits(ctx, req.Commits)

	case models.SourceBranch:
		data := map[string]interface{}{"Branch": req.Branch, "Base": req.Base}
		res.Branch = req.Branch
		res.SuccessMessage = d.msg("branch.success", data)
		res.EmptyMessage = d.msg("branch.empty", data)
		res.Diff, err = d.Git.BranchDiff(ctx, req.Base)

	case models.SourcePullRequest:
		data := map[string]interface{}{"Ref": req.PR.String()}
		res.SuccessMessage = d.msg("pr.success", data)
		res.EmptyMessage = d.msg("pr.empty", data)
		err = ui.WithSpinner(d.out(), d.msg("pr.fetching", data), func() error {
			var fetchErr error
			res.Diff, fetchErr = d.PRs.FetchPRDiff(ctx, *req.PR)
			return fetchErr
		})

	default:
		return res, fmt.Errorf("unknown diff source %q", req.Kind)
	}

	if err != nil {
		if missingTool(err) {
			return models.DiffResult{}, err
		}
		logFailure(ctx, "diff command failed", err)
		res.Diff = ""
	}

	logger.Debug(ctx, "diff retrieved", "diff_size", len(res.Diff))
	return res, nil
}

// retrieveCommits fetches every id on its own. Failed or blank ids are warned
// about and skipped; the rest are joined with one blank line between them.
func (d *Deps) retrieveCommits(ctx context.Context, ids []string) (models.DiffResult, error) {
	var patches []string

	for _, id := range ids {
		patch, err := d.Git.ShowCommit(ctx, id)
		if err != nil {
			if missingTool(err) {
				return models.DiffResult{}, err
			}
			logFailure(ctx, "commit diff failed", err)
		}
		if strings.TrimSpace(patch) == "" {
			ui.PrintWarning(d.out(), d.msg("commits.warning", map[string]interface{}{"Hash": id}))
			continue
		}
		patches = append(patches, strings.TrimRight(patch, "\n"))
	}

	res := models.DiffResult{
		Kind:         models.SourceCommits,
		EmptyMessage: d.msg("commits.empty", nil),
	}
	if len(patches) == 0 {
		return res, nil
	}

	res.Diff = strings.Join(patches, "\n\n") + "\n"
	res.SuccessMessage = d.T.GetMessage("commits.success", len(patches), map[string]interface{}{
		"Count": len(patches),
	})
	return res, nil
}
