// Package pullref turns free-form pull request input into a PRReference and
// builds the matching `gh pr diff` argument vector.
package pullref

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/regex"
)

// Parse never fails: input that matches no known shape is kept in Raw and left
// for the PR tool to reject.
func Parse(input string) models.PRReference {
	raw := strings.TrimSpace(input)
	ref := models.PRReference{Raw: raw}

	if regex.Digits.MatchString(raw) {
		if n, err := strconv.Atoi(raw); err == nil {
			ref.Number = n
		}
		return ref
	}

	if m := regex.RepoPRNumber.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			ref.Repo = m[1]
			ref.Number = n
		}
		return ref
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ref
	}

	ref.Host = strings.ToLower(u.Hostname())
	segments := pathSegments(u.Path)

	if repo, number, ok := pullSegment(segments); ok {
		ref.Repo = repo
		ref.Number = number
		return ref
	}

	// Last purely numeric segment, paired with the first two segments. This can
	// pick up unrelated trailing numbers and is kept that way on purpose.
	for i := len(segments) - 1; i >= 0; i-- {
		if !regex.Digits.MatchString(segments[i]) {
			continue
		}
		n, err := strconv.Atoi(segments[i])
		if err != nil {
			break
		}
		ref.Number = n
		if len(segments) >= 2 && i >= 2 {
			ref.Repo = segments[0] + "/" + segments[1]
		}
		break
	}

	return ref
}

func pullSegment(segments []string) (string, int, bool) {
	for i, seg := range segments {
		if seg != "pull" && seg != "pulls" {
			continue
		}
		if i+1 >= len(segments) || !regex.Digits.MatchString(segments[i+1]) {
			continue
		}
		n, err := strconv.Atoi(segments[i+1])
		if err != nil {
			continue
		}
		if i < 2 {
			return "", n, true
		}
		// api.github.com/repos/<owner>/<repo>/pulls/<n>
		if segments[0] == "repos" && i >= 3 {
			return segments[i-2] + "/" + segments[i-1], n, true
		}
		return segments[0] + "/" + segments[1], n, true
	}
	return "", 0, false
}

func pathSegments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GHArgs returns the argument vector for `gh` that fetches the diff of ref.
func GHArgs(ref models.PRReference) []string {
	args := []string{"pr", "diff"}
	switch {
	case ref.UseRawURL():
		return append(args, ref.Raw)
	case ref.HasNumber() && ref.HasRepo():
		return append(args, strconv.Itoa(ref.Number), "--repo", ref.Repo)
	case ref.HasNumber():
		return append(args, strconv.Itoa(ref.Number))
	default:
		return append(args, ref.Raw)
	}
}
