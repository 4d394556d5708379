package copydiff

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/clipboard"
	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/git"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/runner"
	"github.com/Tomas-vilte/diffclip/internal/ui"
	"github.com/Tomas-vilte/diffclip/internal/vcs/github"
)

type CopyDiffCommandFactory struct {
	in  io.Reader
	out io.Writer
}

func NewCopyDiffCommandFactory() *CopyDiffCommandFactory {
	return &CopyDiffCommandFactory{in: os.Stdin, out: os.Stdout}
}

func (f *CopyDiffCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "copy",
		Aliases: []string{"cp"},
		Usage:   t.GetMessage("copy.usage", 0, nil),
		Action:  f.Action(t, cfg),
	}
}

// Flags belong to the root command, which runs the same action; subcommands
// inherit them.
func (f *CopyDiffCommandFactory) Flags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "summary",
			Aliases: []string{"s"},
			Usage:   t.GetMessage("copy.summary_flag", 0, nil),
		},
	}
}

func (f *CopyDiffCommandFactory) Action(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		r := runner.NewExecRunner()
		gitSvc := git.NewGitServiceWithRunner(r)

		deps := &Deps{
			Git:         gitSvc,
			PRs:         github.NewPRDiffFetcher(cfg, r, gitSvc),
			Clipboard:   clipboard.NewSystem(r),
			Prompter:    ui.NewPrompter(f.in, f.out),
			T:           t,
			Config:      cfg,
			ShowSummary: command.Bool("summary"),
		}
		return Loop(ctx, deps)
	}
}
