package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"genshinbook/internal/eventbus"
)

const (
	// FileName is the per-directory config file name
	FileName = ".genshinbook.toml"
	// EnvPrefix prefixes environment overrides, e.g. GENSHINBOOK_API_BASE_URL
	EnvPrefix = "genshinbook"
	// DefaultBaseURL is the upstream the browser starts from
	DefaultBaseURL = "https://api.genshin.dev"
)

// Config represents the application configuration
type Config struct {
	Version    int        `mapstructure:"version" toml:"version"`
	API        APIConfig  `mapstructure:"api" toml:"api"`
	HTTP       HTTPConfig `mapstructure:"http" toml:"http"`
	Log        LogConfig  `mapstructure:"log" toml:"log"`
	UISettings UISettings `mapstructure:"ui" toml:"ui"`
}

// APIConfig describes the upstream taxonomy API
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" toml:"base_url"`
}

// HTTPConfig holds gateway settings
type HTTPConfig struct {
	Timeout   int    `mapstructure:"timeout" toml:"timeout"` // seconds, 0 disables the timeout
	UserAgent string `mapstructure:"user_agent" toml:"user_agent"`
}

// LogConfig holds logging settings
type LogConfig struct {
	File  string `mapstructure:"file" toml:"file"`
	Level string `mapstructure:"level" toml:"level"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Highlight   bool `mapstructure:"highlight" toml:"highlight"`
	LineNumbers bool `mapstructure:"line_numbers" toml:"line_numbers"`
	Indent      int  `mapstructure:"indent" toml:"indent"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	// Path returns the file the last Load read, or "" if only defaults were used
	Path() string
}

type configService struct {
	bus        eventbus.EventBus
	searchDirs []string
	loadedFrom string
}

// NewConfigService creates a config service that searches the working
// directory and then the user config directory
func NewConfigService() ConfigService {
	dirs := []string{"."}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "genshinbook"))
	}
	return &configService{searchDirs: dirs}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load reads the first config file found in the search directories.
// Defaults and environment overrides apply when no file exists.
func (cs *configService) Load() (*Config, error) {
	path := ""
	for _, dir := range cs.searchDirs {
		candidate := filepath.Join(dir, FileName)
		if dir != "." {
			candidate = filepath.Join(dir, "config.toml")
		}
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
	}
	return cs.load(path)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return cs.load(path)
}

func (cs *configService) load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cs.loadedFrom = path
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, BaseURL: cfg.API.BaseURL})
	}
	return &cfg, nil
}

// SaveToPath writes configuration as TOML
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

func (cs *configService) Path() string {
	return cs.loadedFrom
}

// Validate checks values that would otherwise fail deep inside the gateway
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q: must be an absolute http(s) URL", c.API.BaseURL)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("invalid http.timeout %d: must not be negative", c.HTTP.Timeout)
	}
	if c.UISettings.Indent < 0 || c.UISettings.Indent > 8 {
		return fmt.Errorf("invalid ui.indent %d: must be between 0 and 8", c.UISettings.Indent)
	}
	return nil
}

// LoadDotEnv loads a .env file into the process environment if present.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ui.highlight", d.UISettings.Highlight)
	v.SetDefault("ui.line_numbers", d.UISettings.LineNumbers)
	v.SetDefault("ui.indent", d.UISettings.Indent)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		HTTP: HTTPConfig{
			Timeout:   0,
			UserAgent: "genshinbook",
		},
		Log: LogConfig{
			File:  "genshinbook.log",
			Level: "info",
		},
		UISettings: UISettings{
			Highlight:   true,
			LineNumbers: true,
			Indent:      3,
		},
	}
}
