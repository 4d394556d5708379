package regex

import "regexp"

var (
	// Branch naming: prefix/ticket/description, e.g. feat/SNEC-001/add-login
	TicketBranch = regexp.MustCompile(`^([^/]+)/([^/]+)/(.+)$`)

	// Pull request references
	Digits       = regexp.MustCompile(`^\d+$`)
	RepoPRNumber = regexp.MustCompile(`^([\w.-]+/[\w.-]+)#(\d+)$`)

	// Git and Repo patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+)\.git$`)
	HTTPSRepo = regexp.MustCompile(`https://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)

	// Commit identifiers accepted by the multi-commit input
	CommitList = regexp.MustCompile(`\s*,\s*`)
)
