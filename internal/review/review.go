package review

import (
	"fmt"
	"strings"

	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/regex"
)

// Options select the variable parts of the review template.
type Options struct {
	// Standalone is set when the prompt is copied without a diff.
	Standalone bool
	// IncludeCommit adds the commit message request. Only branch diffs set it.
	IncludeCommit bool
	// Branch is the current branch, used to infer a commit format.
	Branch string
}

// CommitFormat infers the commit message format from a branch named
// prefix/ticket/description. feat/SNEC-001/add-login gives
// "feat[SNEC-001] <message>".
func CommitFormat(branch string) (string, bool) {
	m := regex.TicketBranch.FindStringSubmatch(branch)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s[%s] <message>", m[1], m[2]), true
}

// Compose builds the review template in the language of t.
func Compose(t *i18n.Translations, opts Options) string {
	intro := "review_prompt.intro"
	if opts.Standalone {
		intro = "review_prompt.intro_standalone"
	}

	items := []string{
		t.GetMessage("review_prompt.tech_stack", 0, nil),
		t.GetMessage("review_prompt.summary", 0, nil),
		t.GetMessage("review_prompt.quality", 0, nil),
		t.GetMessage("review_prompt.risks", 0, nil),
		t.GetMessage("review_prompt.tests_docs", 0, nil),
	}
	if opts.IncludeCommit {
		if format, ok := CommitFormat(opts.Branch); ok {
			items = append(items, t.GetMessage("review_prompt.commit_format", 0, map[string]interface{}{
				"Format": format,
			}))
		} else {
			items = append(items, t.GetMessage("review_prompt.commit_generic", 0, nil))
		}
	}

	var b strings.Builder
	b.WriteString(t.GetMessage(intro, 0, nil))
	b.WriteString("\n")
	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, item)
	}
	return b.String()
}

// Payload wraps diff in a fenced diff block and appends prompt, if any,
// after a blank line. The fenced content is diff byte for byte.
func Payload(diff, prompt string) string {
	var b strings.Builder
	b.WriteString("```diff\n")
	b.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```")
	if prompt != "" {
		b.WriteString("\n\n")
		b.WriteString(prompt)
	}
	return b.String()
}
