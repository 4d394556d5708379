package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	domainErrors "github.com/Tomas-vilte/diffclip/internal/errors"
)

type PRBackend string

const (
	BackendGH  PRBackend = "gh"
	BackendAPI PRBackend = "api"
)

type Config struct {
	Language       string    `json:"language"`
	ReviewLanguage string    `json:"review_language"`
	CommitCount    int       `json:"commit_count"`
	BaseCandidates []string  `json:"base_candidates"`
	PRBackend      PRBackend `json:"pr_backend"`
	Token          string    `json:"github_token,omitempty"`
	PathFile       string    `json:"path_file"`
}

const (
	defaultLang           = LangEN
	defaultReviewLanguage = LangES
	defaultCommitCount    = 20
	maxCommitCount        = 200
	configDirName         = ".diffclip"
	configFileName        = "config.json"
)

// DefaultBaseCandidates is the probe order for the branch diff base.
var DefaultBaseCandidates = []string{
	"origin/main", "origin/master", "origin/develop", "origin/dev",
	"main", "master", "develop", "dev",
}

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, configDirName)
		configPath = filepath.Join(configDir, configFileName)

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error al crear el directorio de configuración: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, fmt.Errorf("error al verificar el archivo de configuración: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error al leer el archivo de configuración: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error al decodificar el archivo JSON: %w", err)
	}

	applyDefaults(&config)
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", configPath)
	}

	return &config, nil
}

func NewDefaultConfig() *Config {
	return &Config{
		Language:       defaultLang,
		ReviewLanguage: defaultReviewLanguage,
		CommitCount:    defaultCommitCount,
		BaseCandidates: slices.Clone(DefaultBaseCandidates),
		PRBackend:      BackendGH,
	}
}

func createDefaultConfig(path string) (*Config, error) {
	config := NewDefaultConfig()
	config.PathFile = path

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error al crear el directorio de configuración: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error al codificar la configuración por defecto: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("error al guardar la configuración por defecto: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("la configuración a guardar no es válida: %w", err)
	}

	if config.PathFile == "" {
		return domainErrors.ErrConfigMissing
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error al codificar la configuración: %w", err)
	}

	// 0600: the file may hold a GitHub token
	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error al guardar la configuración: %w", err)
	}

	return nil
}

// GitHubToken returns the configured token, falling back to the environment
// variables the GitHub CLI also honours.
func (c *Config) GitHubToken() string {
	if c.Token != "" {
		return c.Token
	}
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}

// Set updates one key from its string form, as typed on the command line.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "lang", "language":
		if !IsSupportedLanguage(value) {
			return fmt.Errorf("idioma no soportado: %s", value)
		}
		c.Language = value
	case "review_lang", "review_language":
		if !IsSupportedLanguage(value) {
			return fmt.Errorf("idioma no soportado: %s", value)
		}
		c.ReviewLanguage = value
	case "commit_count", "count":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 1 || n > maxCommitCount {
			return fmt.Errorf("commit_count debe estar entre 1 y %d: %s", maxCommitCount, value)
		}
		c.CommitCount = n
	case "base_candidates", "bases":
		var refs []string
		for _, r := range strings.Split(value, ",") {
			if r = strings.TrimSpace(r); r != "" {
				refs = append(refs, r)
			}
		}
		if len(refs) == 0 {
			return errors.New("base_candidates no puede estar vacío")
		}
		c.BaseCandidates = refs
	case "pr_backend", "backend":
		backend := PRBackend(strings.ToLower(value))
		if backend != BackendGH && backend != BackendAPI {
			return fmt.Errorf("backend de PR no soportado: %s", value)
		}
		c.PRBackend = backend
	case "github_token", "token":
		c.Token = strings.TrimSpace(value)
	default:
		return domainErrors.ErrUnknownConfigKey.WithContext("key", key)
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.ReviewLanguage == "" {
		config.ReviewLanguage = defaultReviewLanguage
	}
	if config.CommitCount == 0 {
		config.CommitCount = defaultCommitCount
	}
	if len(config.BaseCandidates) == 0 {
		config.BaseCandidates = slices.Clone(DefaultBaseCandidates)
	}
	if config.PRBackend == "" {
		config.PRBackend = BackendGH
	}
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language no puede estar vacío")
	}
	if config.CommitCount < 1 || config.CommitCount > maxCommitCount {
		return fmt.Errorf("commit_count debe estar entre 1 y %d", maxCommitCount)
	}
	switch config.PRBackend {
	case BackendGH, BackendAPI:
	default:
		return fmt.Errorf("backend de PR no soportado: %s", config.PRBackend)
	}
	return nil
}
