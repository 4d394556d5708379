package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/cli/registry"
	configcmd "github.com/Tomas-vilte/diffclip/internal/commands/config"
	"github.com/Tomas-vilte/diffclip/internal/commands/completion"
	"github.com/Tomas-vilte/diffclip/internal/commands/copydiff"
	versioncmd "github.com/Tomas-vilte/diffclip/internal/commands/version"
	cfg "github.com/Tomas-vilte/diffclip/internal/config"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
	"github.com/Tomas-vilte/diffclip/internal/logger"
	"github.com/Tomas-vilte/diffclip/internal/version"
)

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("no se pudo obtener el directorio del usuario: %v", err)
	}

	app, err := initializeApp(homeDir)
	if err != nil {
		log.Fatalf("Error iniciando la cli: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		stop()
		log.Fatal(err)
	}
}

func initializeApp(homeDir string) (*cli.Command, error) {
	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfg.GetLocaleConfig(cfgApp.Language), "")
	if err != nil {
		return nil, fmt.Errorf("error al cargar las traducciones: %w", err)
	}

	copyFactory := copydiff.NewCopyDiffCommandFactory()

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("copy", copyFactory); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("completion", completion.NewCompletionCommandFactory()); err != nil {
		return nil, err
	}
	if err := registerCommand.Register("version", versioncmd.NewVersionCommandFactory()); err != nil {
		return nil, err
	}

	commands := registerCommand.CreateCommands()
	setup := func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
		if lang := cmd.String("lang"); lang != "" {
			if err := translations.SetLanguage(cfg.GetLocaleConfig(lang)); err != nil {
				return ctx, err
			}
		}
		return logger.With(ctx, "version", version.Version), nil
	}
	wrapActions(commands, setup)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: translations.GetMessage("app.debug_flag", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: translations.GetMessage("app.verbose_flag", 0, nil),
		},
		&cli.StringFlag{
			Name:    "lang",
			Aliases: []string{"l"},
			Usage:   translations.GetMessage("app.lang_flag", 0, nil),
		},
	}

	return &cli.Command{
		Name:                  "diffclip",
		Usage:                 translations.GetMessage("app.usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app.about", 0, nil),
		Flags:                 append(flags, copyFactory.Flags(translations)...),
		Commands:              commands,
		Action:                withSetup(copyFactory.Action(translations, cfgApp), setup),
		EnableShellCompletion: true,
		ShellComplete:         completion.DefaultComplete,
	}, nil
}

type setupFunc func(ctx context.Context, cmd *cli.Command) (context.Context, error)

// wrapActions runs setup before every action in the tree, so the global
// flags apply whichever subcommand is invoked.
func wrapActions(commands []*cli.Command, setup setupFunc) {
	for _, c := range commands {
		if c.Action != nil {
			c.Action = withSetup(c.Action, setup)
		}
		wrapActions(c.Commands, setup)
	}
}

func withSetup(action cli.ActionFunc, setup setupFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		return action(ctx, cmd)
	}
}
