/*
Package config manages the TOML config of the titleserve server and CLI.

	[finder]
	ignore_case = true
	resolve_longest = true
	backend = "native"

	[dict]
	path = ""
	extra_path = ""
	extra_titles = []

	[server]
	max_text_len = 65536
	max_limit = 64
	workers = 0

	[cli]
	default_limit = 10
	show_offsets = true

A file that fails to decode as a whole is salvaged key by key; whatever is
missing or malformed keeps its default.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/titleserve/internal/utils"
	"github.com/bastiangx/titleserve/pkg/dictionary"
	"github.com/bastiangx/titleserve/pkg/finder"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Finder FinderConfig `toml:"finder"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// FinderConfig controls how titles are matched.
type FinderConfig struct {
	IgnoreCase     bool   `toml:"ignore_case"`
	ResolveLongest bool   `toml:"resolve_longest"`
	Backend        string `toml:"backend"`
}

// DictConfig holds title list options. An empty Path uses the bundled list.
type DictConfig struct {
	Path        string   `toml:"path"`
	ExtraPath   string   `toml:"extra_path"`
	ExtraTitles []string `toml:"extra_titles"`
}

// ServerConfig has IPC server limits.
type ServerConfig struct {
	MaxTextLen int `toml:"max_text_len"`
	MaxLimit   int `toml:"max_limit"`
	Workers    int `toml:"workers"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ShowOffsets  bool `toml:"show_offsets"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Finder: FinderConfig{
			IgnoreCase:     true,
			ResolveLongest: true,
			Backend:        finder.BackendNative.String(),
		},
		Dict: DictConfig{
			ExtraTitles: []string{},
		},
		Server: ServerConfig{
			MaxTextLen: 64 << 10,
			MaxLimit:   64,
			Workers:    0,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			ShowOffsets:  true,
		},
	}
}

// Validate reports values no component can run with.
func (c *Config) Validate() error {
	if _, err := finder.ParseBackend(c.Finder.Backend); err != nil {
		return err
	}
	if c.Server.MaxTextLen <= 0 {
		return fmt.Errorf("server.max_text_len must be positive, got %d", c.Server.MaxTextLen)
	}
	if c.Server.MaxLimit <= 0 {
		return fmt.Errorf("server.max_limit must be positive, got %d", c.Server.MaxLimit)
	}
	if c.Server.Workers < 0 {
		return fmt.Errorf("server.workers must not be negative, got %d", c.Server.Workers)
	}
	return nil
}

// FinderOptions translates the finder and dict sections into options for
// finder.New. resolve maps a configured path to the file to open; nil keeps
// paths as written.
func (c *Config) FinderOptions(resolve func(string) string) ([]finder.Option, error) {
	backend, err := finder.ParseBackend(c.Finder.Backend)
	if err != nil {
		return nil, err
	}
	if resolve == nil {
		resolve = func(p string) string { return p }
	}

	opts := []finder.Option{
		finder.WithIgnoreCase(c.Finder.IgnoreCase),
		finder.WithBackend(backend),
	}
	if path := resolve(c.Dict.Path); path != "" {
		opts = append(opts, finder.WithSource(dictionary.Load(path)))
	}
	if c.Dict.ExtraPath != "" {
		opts = append(opts, finder.WithExtraSource(dictionary.Load(resolve(c.Dict.ExtraPath))))
	}
	if len(c.Dict.ExtraTitles) > 0 {
		opts = append(opts, finder.WithExtraTitles(c.Dict.ExtraTitles...))
	}
	return opts, nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. the user config dir ($XDG_CONFIG_HOME/titleserve or ~/.config/titleserve)
// 2. Current executable dir
func GetConfigDir() (string, error) {
	primaryPath, err := utils.UserConfigDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from the -config flag
// 2. Default path: [UserConfigDir]/titleserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Invalid values are reported and replaced
// by their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Invalid config in %s: %v. Using defaults for the offending section...", configPath, err)
		config.sanitize()
	}
	return config, nil
}

// sanitize resets sections that fail validation.
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if _, err := finder.ParseBackend(c.Finder.Backend); err != nil {
		c.Finder.Backend = defaults.Finder.Backend
	}
	if c.Server.MaxTextLen <= 0 {
		c.Server.MaxTextLen = defaults.Server.MaxTextLen
	}
	if c.Server.MaxLimit <= 0 {
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.Workers < 0 {
		c.Server.Workers = defaults.Server.Workers
	}
}

// tryPartialParse salvages the well formed keys of a TOML file
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	data, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(data, "finder"); ok {
		extractFinderConfig(section, &config.Finder)
	}
	if section, ok := utils.ExtractSection(data, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(data, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(data, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractFinderConfig(data map[string]any, f *FinderConfig) {
	if val, ok := utils.ExtractBool(data, "ignore_case"); ok {
		f.IgnoreCase = val
	}
	if val, ok := utils.ExtractBool(data, "resolve_longest"); ok {
		f.ResolveLongest = val
	}
	if val, ok := utils.ExtractString(data, "backend"); ok {
		f.Backend = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractString(data, "extra_path"); ok {
		dict.ExtraPath = val
	}
	if val, ok := utils.ExtractStringSlice(data, "extra_titles"); ok {
		dict.ExtraTitles = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text_len"); ok {
		server.MaxTextLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		server.Workers = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_offsets"); ok {
		cli.ShowOffsets = val
	}
}

// RebuildConfigFile writes a fresh default config.toml at path, or at the
// default location when path is empty.
func RebuildConfigFile(path string) (string, error) {
	if path == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, SaveConfig(DefaultConfig(), path)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the finder settings and saves to file. Nil arguments keep
// their current value.
func (c *Config) Update(configPath string, ignoreCase, resolveLongest *bool, backend *string) error {
	if backend != nil {
		if _, err := finder.ParseBackend(*backend); err != nil {
			return err
		}
		c.Finder.Backend = *backend
	}
	if ignoreCase != nil {
		c.Finder.IgnoreCase = *ignoreCase
	}
	if resolveLongest != nil {
		c.Finder.ResolveLongest = *resolveLongest
	}
	return SaveConfig(c, configPath)
}
