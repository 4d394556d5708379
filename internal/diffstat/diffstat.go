// Package diffstat counts added and removed lines per file in a unified diff,
// the way `git diff --numstat` would report them.
package diffstat

import (
	"strings"

	"github.com/Tomas-vilte/diffclip/internal/models"
)

// Parse walks the diff once. Files appear in the order of their first header;
// a path seen twice (several commits touching it) is accumulated.
func Parse(diff string) []models.FileChange {
	var (
		changes []models.FileChange
		index   = make(map[string]int)
		current = -1
		inHunk  bool
	)

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			path := pathFromHeader(line)
			i, ok := index[path]
			if !ok {
				i = len(changes)
				index[path] = i
				changes = append(changes, models.FileChange{Path: path})
			}
			current = i
			inHunk = false
		case strings.HasPrefix(line, "@@"):
			inHunk = current >= 0
		case !inHunk:
			continue
		case strings.HasPrefix(line, "+"):
			changes[current].Additions++
		case strings.HasPrefix(line, "-"):
			changes[current].Deletions++
		}
	}

	return changes
}

// Totals sums additions and deletions over changes.
func Totals(changes []models.FileChange) (additions, deletions int) {
	for _, c := range changes {
		additions += c.Additions
		deletions += c.Deletions
	}
	return additions, deletions
}

// pathFromHeader takes the b/ side of "diff --git a/x b/x", which is the new
// name for renames.
func pathFromHeader(line string) string {
	rest := strings.TrimPrefix(line, "diff --git ")
	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return rest[i+3:]
	}
	return strings.TrimPrefix(rest, "a/")
}
