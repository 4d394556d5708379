package config

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/ui"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage: t.GetMessage("config.set_args_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() < 2 {
				ui.PrintError(c.out, t.GetMessage("config.set_error_args", 0, nil))
				return errors.New("missing arguments")
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			if err := cfg.Set(key, value); err != nil {
				return err
			}

			if err := config.SaveConfig(cfg); err != nil {
				ui.PrintError(c.out, t.GetMessage("config.save_error", 0, nil))
				return err
			}

			logger.Debug(ctx, "configuration updated", "key", key, "path", cfg.PathFile)

			shown := value
			if key == "github_token" || key == "token" {
				shown = t.GetMessage("config.token_set", 0, nil)
			}
			ui.PrintSuccess(c.out, t.GetMessage("config.set_success", 0, map[string]interface{}{
				"Key":   key,
				"Value": shown,
			}))
			return nil
		},
	}
}
