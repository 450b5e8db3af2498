package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configDirName      = ".helpdesk-toolkit"
	privateConfigName  = "private"
	defaultCacheSubDir = "_docs_cache"
	defaultLogName     = "helpdesk.log"
)

// Config is the merged settings document. It is built once in preRun and
// handed to components explicitly; nothing reads viper after that.
type Config struct {
	API       helpdesk.Creds `mapstructure:"api_credentials"`
	DocsCache string         `mapstructure:"docs_cache"`
	Archive   string         `mapstructure:"archive"`
	Log       string         `mapstructure:"log"`

	// resolved absolute paths, created if missing
	CacheDir   string `mapstructure:"-"`
	ArchiveDir string `mapstructure:"-"`
	LogFile    string `mapstructure:"-"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

// initConfig reads the base config file and merges the private overrides
// document on top, creating a default base config on first run.
func initConfig() {
	dir, err := configDir()
	cobra.CheckErr(err)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			setCfgDefaults()
			path := filepath.Join(dir, "config.yaml")
			fmt.Println("Creating default config file")
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Println("Error creating config directory:", err)
				os.Exit(1)
			}
			if err := viper.WriteConfigAs(path); err != nil {
				fmt.Println("Error creating default config file:", err)
				os.Exit(1)
			}
			fmt.Println("Config file created - location:", path)
		} else {
			fmt.Println("Error reading config file:", err)
			os.Exit(1)
		}
	}

	// Private overrides (credentials and such) live next to the base
	// config and win over it, so the base file can be checked in.
	viper.SetConfigName(privateConfigName)
	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Println("Error reading private config file:", err)
			os.Exit(1)
		}
	}
}

func setCfgDefaults() {
	viper.SetDefault("api_credentials", helpdesk.Creds{})
	viper.SetDefault("docs_cache", defaultCacheSubDir)
	viper.SetDefault("archive", "")
	viper.SetDefault("log", defaultLogName)
}

// resolvePaths turns the configured relative directories into absolute
// ones under the config directory and creates them if missing.
func (cfg *Config) resolvePaths() error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	if cfg.DocsCache == "" {
		cfg.DocsCache = defaultCacheSubDir
	}
	cfg.CacheDir = filepath.Join(dir, cfg.DocsCache)
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	if cfg.Archive != "" {
		cfg.ArchiveDir = filepath.Join(dir, cfg.Archive)
		if err := os.MkdirAll(cfg.ArchiveDir, 0755); err != nil {
			return fmt.Errorf("creating archive directory: %w", err)
		}
	}

	if cfg.Log == "" {
		cfg.Log = defaultLogName
	}
	cfg.LogFile = filepath.Join(dir, "_logs", cfg.Log)
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	return nil
}

// ensureCreds validates the API credentials, prompting for them once if
// they are missing and writing them back to the config file.
func (cfg *Config) ensureCreds() error {
	if cfg.API.Account != "" && cfg.API.Token != "" {
		return nil
	}

	slog.Warn("missing API credentials, prompting")
	if err := cfg.credsForm().Run(); err != nil {
		return fmt.Errorf("running creds form: %w", err)
	}

	viper.Set("api_credentials", cfg.API)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func (cfg *Config) credsForm() *huh.Form {
	return huh.NewForm(
		inputGroup("HelpDesk Account", &cfg.API.Account),
		inputGroup("HelpDesk API Token", &cfg.API.Token),
	).WithHeight(3).WithShowHelp(false).WithTheme(huh.ThemeBase16())
}

func inputGroup(title string, value *string) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title(title).
			Validate(requiredInput).
			Inline(true).
			Value(value),
	)
}

// Validator for required huh Input fields
func requiredInput(s string) error {
	if s == "" {
		return errors.New("field is required")
	}
	return nil
}
