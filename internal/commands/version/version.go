package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/services"
	"github.com/Tomas-vilte/diffclip/internal/ui"
	appVersion "github.com/Tomas-vilte/diffclip/internal/version"
)

type updateChecker interface {
	Check(ctx context.Context) (services.UpdateStatus, error)
}

type VersionCommandFactory struct {
	out        io.Writer
	errOut     io.Writer
	newChecker func(cacheDir string) updateChecker
}

func NewVersionCommandFactory() *VersionCommandFactory {
	return &VersionCommandFactory{
		out:    os.Stdout,
		errOut: os.Stderr,
		newChecker: func(cacheDir string) updateChecker {
			return services.NewVersionChecker(appVersion.Version, cacheDir)
		},
	}
}

func (f *VersionCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: t.GetMessage("version.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: t.GetMessage("version.check_flag", 0, nil),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Fprintln(f.out, t.GetMessage("version.current", 0, map[string]interface{}{
				"Version": appVersion.FullVersion(),
			}))
			if !cmd.Bool("check") {
				return nil
			}

			checker := f.newChecker(filepath.Dir(cfg.PathFile))
			var status services.UpdateStatus
			err := ui.WithSpinner(f.errOut, t.GetMessage("version.checking", 0, nil), func() error {
				var err error
				status, err = checker.Check(ctx)
				return err
			})
			if err != nil {
				logger.Debug(ctx, "update check failed", "error", err)
				ui.PrintWarning(f.out, t.GetMessage("version.check_failed", 0, nil))
				return nil
			}

			switch {
			case status.Latest == "":
				ui.PrintInfo(f.out, t.GetMessage("version.check_disabled", 0, map[string]interface{}{
					"Env": services.DisableEnv,
				}))
			case status.Available:
				ui.PrintInfo(f.out, t.GetMessage("version.update_available", 0, map[string]interface{}{
					"Latest":  status.Latest,
					"Current": status.Current,
				}))
			default:
				ui.PrintSuccess(f.out, t.GetMessage("version.up_to_date", 0, nil))
			}
			return nil
		},
	}
}
