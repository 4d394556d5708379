package completion

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
)

const bashCompletionScript = `#! /bin/bash

_diffclip_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _diffclip_bash_autocomplete diffclip
`

const zshCompletionScript = `#compdef diffclip

_diffclip() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _diffclip diffclip
`

type CompletionCommandFactory struct {
	out io.Writer
}

func NewCompletionCommandFactory() *CompletionCommandFactory {
	return &CompletionCommandFactory{out: os.Stdout}
}

func (f *CompletionCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "completion",
		Usage: t.GetMessage("completion.usage", 0, nil),
		Commands: []*cli.Command{
			{
				Name:  "bash",
				Usage: t.GetMessage("completion.bash_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprint(f.out, bashCompletionScript)
					return err
				},
			},
			{
				Name:  "zsh",
				Usage: t.GetMessage("completion.zsh_usage", 0, nil),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprint(f.out, zshCompletionScript)
					return err
				},
			},
		},
	}
}

// DefaultComplete prints the visible subcommands and all flags of the current
// command, so shells get flag suggestions too.
func DefaultComplete(_ context.Context, cmd *cli.Command) {
	for _, sub := range cmd.Commands {
		if !sub.Hidden {
			fmt.Println(sub.Name)
		}
	}
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				fmt.Println("-" + name)
			} else {
				fmt.Println("--" + name)
			}
		}
	}
}
