package copydiff

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tomas-vilte/diffclip/internal/clipboard"
	"github.com/Tomas-vilte/diffclip/internal/config"
	domainErrors "github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/ui"
	"github.com/Tomas-vilte/diffclip/internal/vcs/github"
	"github.com/Tomas-vilte/diffclip/internal/vcs/pullref"
)

const patch = "diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go\n@@ -1 +1 @@\n-old\n+new\n"

var commandFailed = domainErrors.ErrGitCommand.
	WithError(errors.New("exit status 128")).
	WithContext("stderr", "fatal: bad revision")

type testEnv struct {
	git   *MockGitService
	prs   *github.MockFetcher
	sink  *clipboard.MockSink
	out   *bytes.Buffer
	deps  *Deps
	trans *i18n.Translations
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	color.NoColor = true

	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	env := &testEnv{
		git:   new(MockGitService),
		prs:   new(github.MockFetcher),
		sink:  new(clipboard.MockSink),
		out:   &bytes.Buffer{},
		trans: trans,
	}
	env.deps = &Deps{
		Git:       env.git,
		PRs:       env.prs,
		Clipboard: env.sink,
		Prompter:  ui.NewPrompter(strings.NewReader(input), env.out),
		T:         trans,
		Config:    config.NewDefaultConfig(),
	}
	return env
}

func (e *testEnv) run(t *testing.T) {
	t.Helper()
	require.NoError(t, Loop(context.Background(), e.deps))
}

func (e *testEnv) assertAll(t *testing.T) {
	e.git.AssertExpectations(t)
	e.prs.AssertExpectations(t)
	e.sink.AssertExpectations(t)
}

func fenced(diff string) string {
	return "```diff\n" + diff + "```"
}

func TestLoop_MenuInput(t *testing.T) {
	t.Run("invalid input re-prompts without side effects", func(t *testing.T) {
		env := newTestEnv(t, "abc\n9\n-3\n\n0\n")

		env.run(t)

		out := env.out.String()
		assert.Equal(t, 2, strings.Count(out, "Please enter a number."))
		assert.Equal(t, 2, strings.Count(out, "Invalid input, please try again."))
		assert.Equal(t, 5, strings.Count(out, "Please select: "))
		env.git.AssertNotCalled(t, "StagedDiff", mock.Anything)
		env.sink.AssertNotCalled(t, "Copy", mock.Anything, mock.Anything)
	})

	t.Run("end of input exits cleanly", func(t *testing.T) {
		env := newTestEnv(t, "")

		env.run(t)

		assert.Contains(t, env.out.String(), "0. Exit")
	})

	t.Run("menu lists every action in order", func(t *testing.T) {
		env := newTestEnv(t, "0\n")

		env.run(t)

		out := env.out.String()
		for i, label := range []string{
			"1. Staged diff (git diff --cached)",
			"2. Working directory diff (git diff)",
			"3. Diff of a specific commit",
			"4. Diffs of multiple commits (input hashes)",
			"5. Diff of the current branch against its base",
			"6. Diff of a pull request",
			"7. Copy a review prompt only",
		} {
			assert.Contains(t, out, label, "entry %d", i+1)
		}
	})
}

func TestLoop_SuccessfulCopies(t *testing.T) {
	prRef := pullref.Parse("acme/widgets#123")

	tests := []struct {
		name    string
		input   string
		setup   func(e *testEnv)
		success string
	}{
		{
			name:    "staged",
			input:   "1\n1\n0\n",
			setup:   func(e *testEnv) { e.git.On("StagedDiff", mock.Anything).Return(patch, nil) },
			success: "Staged diff copied to clipboard.",
		},
		{
			name:    "working tree",
			input:   "2\n1\n0\n",
			setup:   func(e *testEnv) { e.git.On("WorkingDiff", mock.Anything).Return(patch, nil) },
			success: "Working directory diff copied to clipboard.",
		},
		{
			name:  "single commit",
			input: "3\n2\n1\n0\n",
			setup: func(e *testEnv) {
				e.git.On("RecentCommits", mock.Anything, 20).Return([]models.Commit{
					{Hash: "aaa111", Subject: "first"},
					{Hash: "bbb222", Subject: "second"},
				}, nil)
				e.git.On("ShowCommit", mock.Anything, "bbb222").Return(patch, nil)
			},
			success: "Diff of commit bbb222 copied to clipboard.",
		},
		{
			name:  "multiple commits",
			input: "4\naaa111\n1\n0\n",
			setup: func(e *testEnv) {
				e.git.On("ShowCommit", mock.Anything, "aaa111").Return(patch, nil)
			},
			success: "Diff of 1 commit copied to clipboard.",
		},
		{
			name:  "branch with default base",
			input: "5\n\n1\n0\n",
			setup: func(e *testEnv) {
				e.git.On("GetCurrentBranch", mock.Anything).Return("feature/login", nil)
				e.git.On("FirstExistingRef", mock.Anything, config.DefaultBaseCandidates).Return("origin/main", true)
				e.git.On("BranchDiff", mock.Anything, "origin/main").Return(patch, nil)
			},
			success: "Diff of feature/login against origin/main copied to clipboard.",
		},
		{
			name:  "pull request",
			input: "6\nacme/widgets#123\n1\n0\n",
			setup: func(e *testEnv) {
				e.prs.On("FetchPRDiff", mock.Anything, prRef).Return(patch, nil)
			},
			success: "Diff of pull request acme/widgets#123 copied to clipboard.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.input)
			tt.setup(env)
			env.sink.On("Copy", mock.Anything, fenced(patch)).Return(nil).Once()

			env.run(t)

			assert.Contains(t, env.out.String(), tt.success)
			env.assertAll(t)
		})
	}
}

func TestLoop_EmptyOrFailedRetrieval(t *testing.T) {
	tests := []struct {
		name  string
		input string
		setup func(e *testEnv)
		empty string
	}{
		{
			name:  "staged command fails",
			input: "1\n0\n",
			setup: func(e *testEnv) { e.git.On("StagedDiff", mock.Anything).Return("", commandFailed) },
			empty: "No diff to copy.",
		},
		{
			name:  "working tree is blank",
			input: "2\n0\n",
			setup: func(e *testEnv) { e.git.On("WorkingDiff", mock.Anything).Return("  \n\t\n", nil) },
			empty: "No diff to copy.",
		},
		{
			name:  "single commit fails",
			input: "3\n1\n0\n",
			setup: func(e *testEnv) {
				e.git.On("RecentCommits", mock.Anything, 20).Return([]models.Commit{{Hash: "aaa111", Subject: "first"}}, nil)
				e.git.On("ShowCommit", mock.Anything, "aaa111").Return("", commandFailed)
			},
			empty: "No diff to copy.",
		},
		{
			name:  "every commit fails",
			input: "4\nbad, worse\n0\n",
			setup: func(e *testEnv) {
				e.git.On("ShowCommit", mock.Anything, "bad").Return("", commandFailed)
				e.git.On("ShowCommit", mock.Anything, "worse").Return("", nil)
			},
			empty: "No diffs copied.",
		},
		{
			name:  "branch has no changes",
			input: "5\n\n0\n",
			setup: func(e *testEnv) {
				e.git.On("GetCurrentBranch", mock.Anything).Return("feature/login", nil)
				e.git.On("FirstExistingRef", mock.Anything, config.DefaultBaseCandidates).Return("origin/main", true)
				e.git.On("BranchDiff", mock.Anything, "origin/main").Return("", nil)
			},
			empty: "No changes between origin/main and feature/login.",
		},
		{
			name:  "pull request fetch fails opaquely",
			input: "6\n123\n0\n",
			setup: func(e *testEnv) {
				e.prs.On("FetchPRDiff", mock.Anything, pullref.Parse("123")).
					Return("", domainErrors.ErrGHCommand.WithContext("stderr", "gh auth login"))
			},
			empty: "No diff found for pull request #123.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.input)
			tt.setup(env)

			env.run(t)

			assert.Contains(t, env.out.String(), tt.empty)
			assert.NotContains(t, env.out.String(), "Append a review prompt?")
			env.sink.AssertNotCalled(t, "Copy", mock.Anything, mock.Anything)
			env.assertAll(t)
		})
	}
}

func TestLoop_MultipleCommits(t *testing.T) {
	t.Run("skips failures and joins patches with one blank line", func(t *testing.T) {
		env := newTestEnv(t, "4\naaa111, bad ,ccc333\n1\n0\n")
		env.git.On("ShowCommit", mock.Anything, "aaa111").Return("commit aaa111\n+a\n", nil)
		env.git.On("ShowCommit", mock.Anything, "bad").Return("", commandFailed)
		env.git.On("ShowCommit", mock.Anything, "ccc333").Return("commit ccc333\n+c\n", nil)
		env.sink.On("Copy", mock.Anything, "```diff\ncommit aaa111\n+a\n\ncommit ccc333\n+c\n```").Return(nil)

		env.run(t)

		out := env.out.String()
		assert.Contains(t, out, "Warning: Could not get diff for commit bad.")
		assert.NotContains(t, out, "commit aaa111.")
		assert.Contains(t, out, "Combined diffs of 2 commits copied to clipboard.")
		env.assertAll(t)
	})

	t.Run("no hashes entered", func(t *testing.T) {
		env := newTestEnv(t, "4\n , ,\n0\n")

		env.run(t)

		assert.Contains(t, env.out.String(), "No valid commit hashes entered.")
		env.git.AssertNotCalled(t, "ShowCommit", mock.Anything, mock.Anything)
	})
}

func TestLoop_SingleCommitMenu(t *testing.T) {
	t.Run("back returns to the main menu", func(t *testing.T) {
		env := newTestEnv(t, "3\n0\n0\n")
		env.git.On("RecentCommits", mock.Anything, 20).Return([]models.Commit{{Hash: "aaa111", Subject: "first"}}, nil)

		env.run(t)

		out := env.out.String()
		assert.Contains(t, out, "0. Back to previous menu")
		assert.Contains(t, out, "1. aaa111 first")
		assert.Equal(t, 2, strings.Count(out, "Please select the diff type to copy:"))
		env.git.AssertNotCalled(t, "ShowCommit", mock.Anything, mock.Anything)
	})

	t.Run("uses the configured commit count", func(t *testing.T) {
		env := newTestEnv(t, "3\n0\n")
		env.deps.Config.CommitCount = 5
		env.git.On("RecentCommits", mock.Anything, 5).Return(nil, commandFailed)

		env.run(t)

		assert.Contains(t, env.out.String(), "No recent commits found.")
		env.assertAll(t)
	})
}

func TestLoop_BranchBase(t *testing.T) {
	t.Run("typed base overrides the default", func(t *testing.T) {
		env := newTestEnv(t, "5\nupstream/dev\n1\n0\n")
		env.git.On("GetCurrentBranch", mock.Anything).Return("feature/login", nil)
		env.git.On("FirstExistingRef", mock.Anything, config.DefaultBaseCandidates).Return("origin/main", true)
		env.git.On("BranchDiff", mock.Anything, "upstream/dev").Return(patch, nil)
		env.sink.On("Copy", mock.Anything, fenced(patch)).Return(nil)

		env.run(t)

		assert.Contains(t, env.out.String(), "Base branch [origin/main] (press Enter to accept or type another): ")
		env.assertAll(t)
	})

	t.Run("no candidate and no input aborts", func(t *testing.T) {
		env := newTestEnv(t, "5\n\n0\n")
		env.git.On("GetCurrentBranch", mock.Anything).Return("feature/login", nil)
		env.git.On("FirstExistingRef", mock.Anything, config.DefaultBaseCandidates).Return("", false)

		env.run(t)

		assert.Contains(t, env.out.String(), "No base branch specified.")
		env.git.AssertNotCalled(t, "BranchDiff", mock.Anything, mock.Anything)
	})

	t.Run("detached HEAD still diffs", func(t *testing.T) {
		env := newTestEnv(t, "5\nmain\n1\n0\n")
		env.git.On("GetCurrentBranch", mock.Anything).Return("", domainErrors.ErrNoBranch)
		env.git.On("FirstExistingRef", mock.Anything, config.DefaultBaseCandidates).Return("", false)
		env.git.On("BranchDiff", mock.Anything, "main").Return(patch, nil)
		env.sink.On("Copy", mock.Anything, fenced(patch)).Return(nil)

		env.run(t)

		assert.Contains(t, env.out.String(), "Current branch: HEAD")
		env.assertAll(t)
	})
}

func TestLoop_ReviewPrompt(t *testing.T) {
	captured := func(env *testEnv) *string {
		var payload string
		env.sink.On("Copy", mock.Anything, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { payload = args.String(1) }).
			Return(nil)
		return &payload
	}

	t.Run("target language prompt for a ticket branch", func(t *testing.T) {
		env := newTestEnv(t, "5\n\n3\n0\n")
		env.git.On("GetCurrentBranch", mock.Anything).Return("feat/SNEC-001/add-login", nil)
		env.git.On("FirstExistingRef", mock.Anything, config.DefaultBaseCandidates).Return("origin/main", true)
		env.git.On("BranchDiff", mock.Anything, "origin/main").Return(patch, nil)
		payload := captured(env)

		env.run(t)

		assert.Contains(t, env.out.String(), "3. Spanish review prompt")
		assert.True(t, strings.HasPrefix(*payload, fenced(patch)+"\n\nPor favor revisá"))
		assert.Contains(t, *payload, "feat[SNEC-001] <message>")
	})

	t.Run("English prompt for staged diff has no commit request", func(t *testing.T) {
		env := newTestEnv(t, "1\n2\n0\n")
		env.git.On("StagedDiff", mock.Anything).Return(patch, nil)
		payload := captured(env)

		env.run(t)

		assert.True(t, strings.HasPrefix(*payload, fenced(patch)+"\n\nPlease review the code changes in the diff above."))
		assert.NotContains(t, *payload, "commit message")
	})

	t.Run("back aborts without copying", func(t *testing.T) {
		env := newTestEnv(t, "1\n0\n0\n")
		env.git.On("StagedDiff", mock.Anything).Return(patch, nil)

		env.run(t)

		env.sink.AssertNotCalled(t, "Copy", mock.Anything, mock.Anything)
		assert.NotContains(t, env.out.String(), "copied to clipboard")
	})
}

func TestLoop_ReviewPromptOnly(t *testing.T) {
	t.Run("copies the standalone prompt and ends the session", func(t *testing.T) {
		env := newTestEnv(t, "7\n1\n")
		env.sink.On("Copy", mock.Anything, mock.MatchedBy(func(s string) bool {
			return strings.HasPrefix(s, "Please review the code changes in the diff I am about to share.") &&
				!strings.Contains(s, "```")
		})).Return(nil)

		env.run(t)

		assert.Contains(t, env.out.String(), "Review prompt copied to clipboard.")
		env.assertAll(t)
	})

	t.Run("back returns to the menu", func(t *testing.T) {
		env := newTestEnv(t, "7\n0\n0\n")

		env.run(t)

		env.sink.AssertNotCalled(t, "Copy", mock.Anything, mock.Anything)
		assert.Equal(t, 2, strings.Count(env.out.String(), "Please select the diff type to copy:"))
	})
}

func TestLoop_Errors(t *testing.T) {
	t.Run("missing git is reported and the loop continues", func(t *testing.T) {
		env := newTestEnv(t, "1\n0\n")
		env.git.On("StagedDiff", mock.Anything).Return("", domainErrors.ErrGitNotInstalled)

		env.run(t)

		out := env.out.String()
		assert.Contains(t, out, "GIT: git executable not found")
		assert.Equal(t, 2, strings.Count(out, "Please select the diff type to copy:"))
	})

	t.Run("clipboard failure is reported", func(t *testing.T) {
		env := newTestEnv(t, "1\n1\n0\n")
		env.git.On("StagedDiff", mock.Anything).Return(patch, nil)
		env.sink.On("Copy", mock.Anything, fenced(patch)).Return(domainErrors.ErrClipboard)

		env.run(t)

		out := env.out.String()
		assert.Contains(t, out, "CLIPBOARD: Failed to write to the clipboard")
		assert.NotContains(t, out, "Staged diff copied to clipboard.")
	})

	t.Run("input ending inside a handler exits cleanly", func(t *testing.T) {
		env := newTestEnv(t, "6\n")

		env.run(t)

		env.prs.AssertNotCalled(t, "FetchPRDiff", mock.Anything, mock.Anything)
	})
}

func TestLoop_Summary(t *testing.T) {
	env := newTestEnv(t, "1\n1\n0\n")
	env.deps.ShowSummary = true
	env.git.On("StagedDiff", mock.Anything).Return(patch, nil)
	env.sink.On("Copy", mock.Anything, fenced(patch)).Return(nil)

	env.run(t)

	assert.Contains(t, env.out.String(), "Files in the copied diff:\n└── main.go (+1, -1)")
}
