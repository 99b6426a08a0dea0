// Package config handles loading taskmaster.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/taskmaster/internal/paths"
)

// Config represents the taskmaster.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Server  Server  `toml:"server"`
	Chat    Chat    `toml:"chat"`
}

// Storage contains task-storage configuration.
type Storage struct {
	// Path overrides the location of the tasks storage file.
	Path string `toml:"path"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Addr is the listen address for `tm serve`.
	Addr string `toml:"addr"`
}

// Chat contains assistant-backend configuration.
type Chat struct {
	// Endpoint is the text-generation API endpoint the chat proxy forwards to.
	Endpoint string `toml:"endpoint"`

	// Model optionally names the generation model to request.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in a config file.
	APIKeyEnv string `toml:"api-key-env"`
}

// DefaultServerAddr is used when no listen address is configured.
const DefaultServerAddr = ":5000"

// DefaultAPIKeyEnv is the environment variable consulted for the chat API key
// when the config file doesn't name one.
const DefaultAPIKeyEnv = "GEMINI_API_KEY"

// Load loads configuration from the working directory and the global config
// file. Returns an empty config if no config files exist.
func Load(workDir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(workDir, "taskmaster.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

// ServerAddr returns the configured listen address or the default.
func (c *Config) ServerAddr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return DefaultServerAddr
}

// ChatAPIKey reads the chat API key from the configured environment variable.
func (c *Config) ChatAPIKey() string {
	env := c.Chat.APIKeyEnv
	if env == "" {
		env = DefaultAPIKeyEnv
	}
	return strings.TrimSpace(os.Getenv(env))
}

// TasksPath resolves the tasks storage file location.
func (c *Config) TasksPath() (string, error) {
	return paths.ResolveWithDefault(c.Storage.Path, paths.DefaultTasksPath)
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.Server.Addr = mergeString(projectMeta.IsDefined("server", "addr"), projectCfg.Server.Addr, globalCfg.Server.Addr)
	merged.Chat.Endpoint = mergeString(projectMeta.IsDefined("chat", "endpoint"), projectCfg.Chat.Endpoint, globalCfg.Chat.Endpoint)
	merged.Chat.Model = mergeString(projectMeta.IsDefined("chat", "model"), projectCfg.Chat.Model, globalCfg.Chat.Model)
	merged.Chat.APIKeyEnv = mergeString(projectMeta.IsDefined("chat", "api-key-env"), projectCfg.Chat.APIKeyEnv, globalCfg.Chat.APIKeyEnv)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
