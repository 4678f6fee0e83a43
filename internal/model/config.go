package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// StorageConfig selects where the inventory document lives.
type StorageConfig struct {
	// Backend is "json" (default) or "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the data file. Empty means DefaultDataPath for the backend.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds rendering preferences.
type DisplayConfig struct {
	// Locale is a BCP 47 tag used for name collation, e.g. "de" or "en-US".
	Locale string `mapstructure:"locale" yaml:"locale"`

	// Currency is the symbol appended to formatted amounts.
	Currency string `mapstructure:"currency" yaml:"currency"`
}

// LogConfig controls the application log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sortbase")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "sortbase")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/sortbase/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultDataPath returns the data file for backend inside the config
// directory.
func DefaultDataPath(backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(configDir(), "inventory.db")
	}
	return filepath.Join(configDir(), "inventory.json")
}

// DefaultLogPath returns the log file inside the config directory.
func DefaultLogPath() string {
	return filepath.Join(configDir(), "sortbase.log")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Backend: BackendJSON},
		Display: DisplayConfig{Locale: "und", Currency: "€"},
		Log:     LogConfig{Level: "warn"},
	}
}

// NewViper returns a viper instance with every default set and
// SORTBASE_* environment overrides enabled (SORTBASE_STORAGE_BACKEND, ...).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SORTBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := defaultAppConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("display.locale", d.Display.Locale)
	v.SetDefault("display.currency", d.Display.Currency)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	return LoadConfigWith(NewViper(), path)
}

// LoadConfigWith is LoadConfig on a caller-prepared viper instance, so
// command-line flags bound to v take precedence over the file.
func LoadConfigWith(v *viper.Viper, path string) (*AppConfig, error) {
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch cfg.Storage.Backend {
	case BackendJSON, BackendSQLite:
	case "":
		cfg.Storage.Backend = BackendJSON
	default:
		return nil, fmt.Errorf("parsing config %s: unknown storage backend %q", path, cfg.Storage.Backend)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultDataPath(cfg.Storage.Backend)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogPath()
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
