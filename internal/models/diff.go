package models

import "strings"

// SourceKind identifies where a diff comes from.
type SourceKind string

const (
	SourceStaged      SourceKind = "staged"
	SourceWorking     SourceKind = "working"
	SourceCommit      SourceKind = "commit"
	SourceCommits     SourceKind = "commits"
	SourceBranch      SourceKind = "branch"
	SourcePullRequest SourceKind = "pull_request"
)

// ReviewPromptChoice selects the template appended after the diff.
type ReviewPromptChoice int

const (
	PromptAbort ReviewPromptChoice = iota - 1
	PromptNone
	PromptEnglish
	PromptTarget
)

type (
	// DiffRequest is built when a menu option is picked and consumed right away.
	DiffRequest struct {
		Kind    SourceKind
		Commits []string
		Base    string
		Branch  string
		PR      *PRReference
	}

	// DiffResult is the raw output of one retrieval plus the messages the loop
	// prints for it.
	DiffResult struct {
		Kind           SourceKind
		Diff           string
		SuccessMessage string
		EmptyMessage   string
		// Branch is set for branch diffs and drives commit format inference.
		Branch string
	}
)

// Empty reports whether there is nothing worth copying. Command failures are
// represented the same way.
func (r DiffResult) Empty() bool {
	return strings.TrimSpace(r.Diff) == ""
}

// FileChange is the per-file line count of a unified diff.
type FileChange struct {
	Path      string
	Additions int
	Deletions int
}
