package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeGit           ErrorType = "GIT"
	TypeClipboard     ErrorType = "CLIPBOARD"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError derived from the same sentinel, so errors.Is keeps
// working after WithError / WithContext produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// Stderr returns the captured stderr of a failed command, if any.
func (e *AppError) Stderr() string {
	if e.Context == nil {
		return ""
	}
	s, _ := e.Context["stderr"].(string)
	return s
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrGitCommand = NewAppError(TypeGit, "git command failed", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrGitNotInstalled = NewAppError(TypeGit, "git executable not found", nil).
				WithSuggestion("Install git and make sure it is in your PATH")

	ErrGetBranch = NewAppError(TypeGit, "Failed to get current branch", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrNoBranch = NewAppError(TypeGit, "No branch detected", nil).
			WithSuggestion("Check out a branch first: git checkout <branch-name>")

	ErrGetRecentCommits = NewAppError(TypeGit, "Failed to get recent commits", nil).
				WithSuggestion("Verify repository has commits: git log --oneline")
)

// VCS errors
var (
	ErrGHCommand = NewAppError(TypeVCS, "gh command failed", nil).
			WithSuggestion("Check you are logged in: gh auth status")

	ErrGHNotInstalled = NewAppError(TypeVCS, "gh executable not found", nil).
				WithSuggestion("Install the GitHub CLI: https://cli.github.com")

	ErrGitHubAPI = NewAppError(TypeVCS, "GitHub API request failed", nil).
			WithSuggestion("Verify your token: diffclip config set github_token <token>")

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrUnsupportedPRHost = NewAppError(TypeVCS, "pull request host is not supported by the API backend", nil)
)

// Clipboard errors
var (
	ErrClipboard = NewAppError(TypeClipboard, "Failed to write to the clipboard", nil).
		WithSuggestion("On Linux install xclip, xsel or wl-clipboard")
)

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Run any diffclip command once to create ~/.diffclip/config.json")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is not valid", nil).
				WithSuggestion("Inspect it with: diffclip config show")

	ErrUnknownConfigKey = NewAppError(TypeConfiguration, "Unknown configuration key", nil).
				WithSuggestion("Valid keys: lang, review_lang, commit_count, base_candidates, pr_backend, github_token")
)
