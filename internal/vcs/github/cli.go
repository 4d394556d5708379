package github

import (
	"context"
	"strings"

	"github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/runner"
	"github.com/Tomas-vilte/diffclip/internal/vcs"
	"github.com/Tomas-vilte/diffclip/internal/vcs/pullref"
)

var _ vcs.PRDiffFetcher = (*CLIClient)(nil)

// CLIClient shells out to the GitHub CLI. Authentication and enterprise hosts
// are whatever `gh` itself is configured for.
type CLIClient struct {
	runner runner.Runner
	bin    string
}

func NewCLIClient(r runner.Runner) *CLIClient {
	return &CLIClient{runner: r, bin: "gh"}
}

func (c *CLIClient) FetchPRDiff(ctx context.Context, ref models.PRReference) (string, error) {
	args := pullref.GHArgs(ref)
	logger.Debug(ctx, "fetching pull request diff with gh", "ref", ref.String(), "args", strings.Join(args, " "))

	res, err := c.runner.Run(ctx, nil, c.bin, args...)
	if err != nil {
		if runner.IsNotFound(err) {
			return "", errors.ErrGHNotInstalled.WithError(err)
		}
		return "", errors.ErrGHCommand.
			WithError(err).
			WithContext("args", strings.Join(args, " ")).
			WithContext("stderr", res.Stderr)
	}
	return res.Stdout, nil
}
