package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/regex"
	"github.com/Tomas-vilte/diffclip/internal/runner"
)

type GitService struct {
	runner runner.Runner
}

func NewGitService() *GitService {
	return &GitService{runner: runner.NewExecRunner()}
}

func NewGitServiceWithRunner(r runner.Runner) *GitService {
	return &GitService{runner: r}
}

// StagedDiff returns the diff between the index and HEAD.
func (s *GitService) StagedDiff(ctx context.Context) (string, error) {
	return s.output(ctx, "diff", "--cached")
}

// WorkingDiff returns the unstaged changes of the working tree.
func (s *GitService) WorkingDiff(ctx context.Context) (string, error) {
	return s.output(ctx, "diff")
}

// ShowCommit returns the full patch of a single commit.
func (s *GitService) ShowCommit(ctx context.Context, id string) (string, error) {
	if err := validateRef(id); err != nil {
		return "", err
	}
	return s.output(ctx, "show", id)
}

// BranchDiff returns the changes from the fork point of base up to HEAD.
func (s *GitService) BranchDiff(ctx context.Context, base string) (string, error) {
	if err := validateRef(base); err != nil {
		return "", err
	}
	return s.output(ctx, "diff", base+"...HEAD")
}

func (s *GitService) RecentCommits(ctx context.Context, count int) ([]models.Commit, error) {
	out, err := s.output(ctx, "log", "--oneline", "-n", fmt.Sprintf("%d", count))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrGetRecentCommits, err)
	}
	return parseOneline(out), nil
}

func (s *GitService) GetCurrentBranch(ctx context.Context) (string, error) {
	out, err := s.output(ctx, "branch", "--show-current")
	if err != nil {
		// git < 2.22 has no --show-current
		out, err = s.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
		if err != nil {
			return "", errors.ErrGetBranch.WithError(err)
		}
	}

	branchName := strings.TrimSpace(out)
	if branchName == "" || branchName == "HEAD" {
		return "", errors.ErrNoBranch
	}

	return branchName, nil
}

// RefExists reports whether ref resolves to an object.
func (s *GitService) RefExists(ctx context.Context, ref string) bool {
	if validateRef(ref) != nil {
		return false
	}
	_, err := s.output(ctx, "rev-parse", "--verify", "--quiet", ref)
	return err == nil
}

// FirstExistingRef probes candidates in order and returns the first one that
// exists.
func (s *GitService) FirstExistingRef(ctx context.Context, candidates []string) (string, bool) {
	for _, ref := range candidates {
		if s.RefExists(ctx, ref) {
			return ref, true
		}
	}
	return "", false
}

// GetRepoInfo returns owner, repository name and provider of the origin remote.
func (s *GitService) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	out, err := s.output(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", errors.ErrGitCommand.WithContext("args", "remote get-url origin"), err)
	}

	return parseRepoURL(strings.TrimSpace(out))
}

func (s *GitService) output(ctx context.Context, args ...string) (string, error) {
	res, err := s.runner.Run(ctx, nil, "git", args...)
	if err != nil {
		if runner.IsNotFound(err) {
			return "", errors.ErrGitNotInstalled.WithError(err)
		}
		return "", errors.ErrGitCommand.
			WithError(err).
			WithContext("args", strings.Join(args, " ")).
			WithContext("stderr", res.Stderr)
	}
	return res.Stdout, nil
}

// validateRef keeps user-typed identifiers from being read as git options.
func validateRef(ref string) error {
	if ref == "" || strings.HasPrefix(ref, "-") {
		return errors.ErrGitCommand.WithContext("stderr", fmt.Sprintf("invalid revision %q", ref))
	}
	return nil
}

func parseOneline(out string) []models.Commit {
	var commits []models.Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, subject, _ := strings.Cut(line, " ")
		commits = append(commits, models.Commit{Hash: hash, Subject: subject})
	}
	return commits
}

func parseRepoURL(url string) (string, string, string, error) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		provider := detectProvider(matches[1])
		repoName := strings.TrimSuffix(matches[3], ".git")
		return matches[2], repoName, provider, nil
	}

	return "", "", "", errors.ErrGitCommand.WithContext("stderr", fmt.Sprintf("cannot extract owner/repo from %s", url))
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}
