package config

import (
	"context"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/ui"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(c.out, t.GetMessage("config.usage", 0, nil))

			token := t.GetMessage("config.token_unset", 0, nil)
			if cfg.GitHubToken() != "" {
				token = t.GetMessage("config.token_set", 0, nil)
			}

			ui.PrintKeyValue(c.out, t.GetMessage("config.file", 0, nil), cfg.PathFile)
			ui.PrintKeyValue(c.out, t.GetMessage("config.language", 0, nil), cfg.Language)
			ui.PrintKeyValue(c.out, t.GetMessage("config.review_language", 0, nil), cfg.ReviewLanguage)
			ui.PrintKeyValue(c.out, t.GetMessage("config.commit_count", 0, nil), strconv.Itoa(cfg.CommitCount))
			ui.PrintKeyValue(c.out, t.GetMessage("config.base_candidates", 0, nil), strings.Join(cfg.BaseCandidates, ", "))
			ui.PrintKeyValue(c.out, t.GetMessage("config.pr_backend", 0, nil), string(cfg.PRBackend))
			ui.PrintKeyValue(c.out, t.GetMessage("config.github_token", 0, nil), token)
			return nil
		},
	}
}
