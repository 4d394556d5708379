package config

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/Tomas-vilte/diffclip/internal/config"
	domainErrors "github.com/Tomas-vilte/diffclip/internal/errors"
	"github.com/Tomas-vilte/diffclip/internal/i18n"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations, *bytes.Buffer, *ConfigCommandFactory) {
	color.NoColor = true

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return cfg, translations, out, &ConfigCommandFactory{out: out}
}

func runApp(factory *ConfigCommandFactory, t *i18n.Translations, cfg *config.Config, args ...string) error {
	app := &cli.Command{
		Name:     "diffclip",
		Commands: []*cli.Command{factory.CreateCommand(t, cfg)},
	}
	return app.Run(context.Background(), append([]string{"diffclip", "config"}, args...))
}

func TestShowCommand(t *testing.T) {
	t.Run("should display the current configuration", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		cfg, translations, out, factory := setupConfigTest(t)

		// Act
		err := runApp(factory, translations, cfg, "show")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Language: en")
		assert.Contains(t, out.String(), "Review prompt language: es")
		assert.Contains(t, out.String(), "Recent commits listed: 20")
		assert.Contains(t, out.String(), "Base branch candidates: origin/main, origin/master")
		assert.Contains(t, out.String(), "Pull request backend: gh")
		assert.Contains(t, out.String(), "GitHub token: not configured")
	})

	t.Run("should never print the token itself", func(t *testing.T) {
		cfg, translations, out, factory := setupConfigTest(t)
		cfg.Token = "ghp_secret"

		err := runApp(factory, translations, cfg, "show")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "GitHub token: configured")
		assert.NotContains(t, out.String(), "ghp_secret")
	})
}

func TestSetCommand(t *testing.T) {
	t.Run("should update and persist a value", func(t *testing.T) {
		cfg, translations, out, factory := setupConfigTest(t)

		// Act
		err := runApp(factory, translations, cfg, "set", "commit_count", "35")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out.String(), "commit_count set to 35")

		reloaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, 35, reloaded.CommitCount)
	})

	t.Run("should mask the token in the confirmation", func(t *testing.T) {
		cfg, translations, out, factory := setupConfigTest(t)

		err := runApp(factory, translations, cfg, "set", "github_token", "ghp_secret")

		require.NoError(t, err)
		assert.Equal(t, "ghp_secret", cfg.Token)
		assert.NotContains(t, out.String(), "ghp_secret")
	})

	t.Run("should fail without arguments", func(t *testing.T) {
		cfg, translations, out, factory := setupConfigTest(t)

		err := runApp(factory, translations, cfg, "set", "lang")

		assert.Error(t, err)
		assert.Contains(t, out.String(), "Usage: diffclip config set <key> <value>")
	})

	t.Run("should reject unknown keys", func(t *testing.T) {
		cfg, translations, _, factory := setupConfigTest(t)

		err := runApp(factory, translations, cfg, "set", "editor", "vim")

		assert.True(t, errors.Is(err, domainErrors.ErrUnknownConfigKey))
	})
}
