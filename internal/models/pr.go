package models

import "strconv"

// Hosts that are resolved through owner/repo shorthands. Any other host must be
// passed to the PR tool as the full URL.
const (
	DefaultPRHost = "github.com"
	APIPRHost     = "api.github.com"
)

type (
	// PRReference is a pull request identifier parsed from user input.
	// Either Repo+Number or Raw is always set, so a fallback invocation is
	// always possible.
	PRReference struct {
		Repo   string // owner/name, optional
		Number int    // 0 when unknown
		Raw    string
		Host   string // lowercased, port stripped; empty for non-URL input
	}

	// Commit is a one-line log entry.
	Commit struct {
		Hash    string
		Subject string
	}
)

func (r PRReference) HasRepo() bool {
	return r.Repo != ""
}

func (r PRReference) HasNumber() bool {
	return r.Number > 0
}

// UseRawURL reports whether the reference points at an enterprise or
// self-hosted instance, which can only be addressed by its full URL.
func (r PRReference) UseRawURL() bool {
	if r.Host == "" {
		return false
	}
	return r.Host != DefaultPRHost && r.Host != APIPRHost
}

func (r PRReference) String() string {
	switch {
	case r.UseRawURL():
		return r.Raw
	case r.HasRepo() && r.HasNumber():
		return r.Repo + "#" + strconv.Itoa(r.Number)
	case r.HasNumber():
		return "#" + strconv.Itoa(r.Number)
	default:
		return r.Raw
	}
}

func (c Commit) String() string {
	if c.Subject == "" {
		return c.Hash
	}
	return c.Hash + " " + c.Subject
}
