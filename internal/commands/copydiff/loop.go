package copydiff

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tomas-vilte/diffclip/internal/diffstat"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/models"
	"github.com/Tomas-vilte/diffclip/internal/review"
	"github.com/Tomas-vilte/diffclip/internal/ui"
)

// Action is one entry of the main menu.
type Action int

const (
	ActionExit Action = iota
	ActionStaged
	ActionWorking
	ActionCommit
	ActionCommits
	ActionBranch
	ActionPullRequest
	ActionReviewPromptOnly
)

type menuEntry struct {
	action Action
	label  string
}

// menu lists the actions in display order; entry i is picked with i+1.
var menu = []menuEntry{
	{ActionStaged, "menu.staged"},
	{ActionWorking, "menu.working"},
	{ActionCommit, "menu.commit"},
	{ActionCommits, "menu.commits"},
	{ActionBranch, "menu.branch"},
	{ActionPullRequest, "menu.pull_request"},
	{ActionReviewPromptOnly, "menu.review_prompt_only"},
}

func (d *Deps) handler(a Action) (Handler, bool) {
	switch a {
	case ActionStaged:
		return stagedHandler{d}, true
	case ActionWorking:
		return workingHandler{d}, true
	case ActionCommit:
		return commitHandler{d}, true
	case ActionCommits:
		return commitsHandler{d}, true
	case ActionBranch:
		return branchHandler{d}, true
	case ActionPullRequest:
		return pullRequestHandler{d}, true
	}
	return nil, false
}

// Loop shows the menu until the user exits, input ends, or a review prompt
// alone has been copied. Failures of a single action are reported and the
// menu comes back.
func Loop(ctx context.Context, d *Deps) error {
	d.Prompter.NotANumber = d.msg("prompt.enter_number", nil)
	d.Prompter.OutOfRange = d.msg("prompt.invalid_input", nil)

	for {
		action, err := d.selectAction()
		if err != nil {
			return endOfInput(err)
		}

		switch action {
		case ActionExit:
			return nil

		case ActionReviewPromptOnly:
			done, err := d.copyReviewPromptOnly(ctx)
			if err != nil {
				if errors.Is(err, ui.ErrInputClosed) {
					return nil
				}
				ui.HandleAppError(d.out(), err, d.T)
				continue
			}
			if done {
				return nil
			}

		default:
			h, _ := d.handler(action)
			result, ok, err := h.Fetch(ctx)
			if err != nil {
				if errors.Is(err, ui.ErrInputClosed) {
					return nil
				}
				ui.HandleAppError(d.out(), err, d.T)
				continue
			}
			if !ok {
				continue
			}
			if err := d.deliver(ctx, result); err != nil {
				if errors.Is(err, ui.ErrInputClosed) {
					return nil
				}
				ui.HandleAppError(d.out(), err, d.T)
			}
		}
	}
}

func (d *Deps) selectAction() (Action, error) {
	_, _ = fmt.Fprintf(d.out(), "\n%s\n\n", d.msg("menu.title", nil))
	for i, e := range menu {
		_, _ = fmt.Fprintf(d.out(), "%d. %s\n", i+1, d.msg(e.label, nil))
	}
	_, _ = fmt.Fprintf(d.out(), "\n0. %s\n", d.msg("menu.exit", nil))

	n, err := d.Prompter.ReadChoice(d.msg("prompt.select", nil), len(menu))
	if err != nil {
		return ActionExit, err
	}
	if n == 0 {
		return ActionExit, nil
	}
	return menu[n-1].action, nil
}

// deliver turns a retrieved diff into the clipboard payload.
func (d *Deps) deliver(ctx context.Context, result models.DiffResult) error {
	if result.Empty() {
		ui.PrintWarning(d.out(), result.EmptyMessage)
		return nil
	}

	choice, err := d.askReviewPrompt()
	if err != nil {
		return err
	}
	if choice == models.PromptAbort {
		return nil
	}

	prompt := d.composePrompt(choice, review.Options{
		IncludeCommit: result.Kind == models.SourceBranch,
		Branch:        result.Branch,
	})
	payload := review.Payload(result.Diff, prompt)

	if err := d.Clipboard.Copy(ctx, payload); err != nil {
		return err
	}
	logger.Info(ctx, "diff copied", "source", string(result.Kind), "diff_size", len(result.Diff), "prompt", int(choice))

	ui.PrintSuccess(d.out(), result.SuccessMessage)
	if d.ShowSummary {
		ui.ShowFilesTree(d.out(), diffstat.Parse(result.Diff), d.msg("summary.header", nil))
	}
	return nil
}

// askReviewPrompt offers 1 none, 2 English, 3 the configured review language,
// 0 back to the main menu.
func (d *Deps) askReviewPrompt() (models.ReviewPromptChoice, error) {
	_, _ = fmt.Fprintf(d.out(), "\n%s\n", d.msg("review.menu_title", nil))
	_, _ = fmt.Fprintf(d.out(), "1. %s\n", d.msg("review.none", nil))
	_, _ = fmt.Fprintf(d.out(), "2. %s\n", d.msg("review.english", nil))
	_, _ = fmt.Fprintf(d.out(), "3. %s\n", d.targetLabel())
	_, _ = fmt.Fprintf(d.out(), "0. %s\n", d.msg("review.back", nil))

	n, err := d.Prompter.ReadChoice(d.msg("prompt.select", nil), 3)
	if err != nil {
		return models.PromptAbort, err
	}
	switch n {
	case 1:
		return models.PromptNone, nil
	case 2:
		return models.PromptEnglish, nil
	case 3:
		return models.PromptTarget, nil
	}
	return models.PromptAbort, nil
}

// copyReviewPromptOnly copies the template without a diff. done is true once
// something was copied.
func (d *Deps) copyReviewPromptOnly(ctx context.Context) (bool, error) {
	_, _ = fmt.Fprintf(d.out(), "\n%s\n", d.msg("review.only_title", nil))
	_, _ = fmt.Fprintf(d.out(), "1. %s\n", d.msg("review.english", nil))
	_, _ = fmt.Fprintf(d.out(), "2. %s\n", d.targetLabel())
	_, _ = fmt.Fprintf(d.out(), "0. %s\n", d.msg("menu.back", nil))

	n, err := d.Prompter.ReadChoice(d.msg("prompt.select", nil), 2)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	choice := models.PromptEnglish
	if n == 2 {
		choice = models.PromptTarget
	}
	prompt := d.composePrompt(choice, review.Options{Standalone: true})

	if err := d.Clipboard.Copy(ctx, prompt); err != nil {
		return false, err
	}
	ui.PrintSuccess(d.out(), d.msg("review.only_success", nil))
	return true, nil
}

func (d *Deps) composePrompt(choice models.ReviewPromptChoice, opts review.Options) string {
	switch choice {
	case models.PromptEnglish:
		return review.Compose(d.T.ForLanguage("en"), opts)
	case models.PromptTarget:
		return review.Compose(d.T.ForLanguage(d.Config.ReviewLanguage), opts)
	}
	return ""
}

func (d *Deps) targetLabel() string {
	return d.msg("review.target", map[string]interface{}{
		"Language": d.msg("language."+d.Config.ReviewLanguage, nil),
	})
}

// endOfInput treats a closed stdin as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, ui.ErrInputClosed) {
		return nil
	}
	return err
}
