// Package config reads and writes the optional config.yaml that sits next to
// the data store.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/viper"

	"github.com/julianstephens/mindcalm/internal/constants"
)

var ErrUnknownSetting = errors.New("unknown setting")

type AIConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Model   string `mapstructure:"model" yaml:"model"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type StorageConfig struct {
	// Backups enables automatic backups before destructive commands.
	Backups    bool `mapstructure:"backups" yaml:"backups"`
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
}

type Config struct {
	AI      AIConfig      `mapstructure:"ai" yaml:"ai"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
}

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
)

type setting struct {
	def  any
	kind kind
}

var settings = map[string]setting{
	"ai.enabled":          {true, kindBool},
	"ai.model":            {constants.DefaultAIModel, kindString},
	"server.addr":         {constants.DefaultServerAddr, kindString},
	"storage.backups":     {true, kindBool},
	"storage.max_backups": {constants.MaxBackups, kindInt},
}

// Keys lists every recognised setting in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PathIn returns the config file kept in dir.
func PathIn(dir string) string {
	return filepath.Join(dir, constants.ConfigFileName)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	for k, s := range settings {
		v.SetDefault(k, s.def)
	}
	return v
}

// read loads the file if present. A missing file is not an error.
func read(v *viper.Viper, path string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if errors.As(err, &notFound) || errors.As(err, &pathErr) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// Load reads the config at path, falling back to defaults for anything unset.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if err := read(v, path); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Default is the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	_ = newViper("").Unmarshal(cfg)
	return cfg
}

// Get returns the effective value of one setting as text.
func Get(path, key string) (string, error) {
	if _, ok := settings[key]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	v := newViper(path)
	if err := read(v, path); err != nil {
		return "", err
	}
	return v.GetString(key), nil
}

// Set validates value for key and writes it back to the file, creating the
// file when needed.
func Set(path, key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	var parsed any = value
	switch s.kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		parsed = b
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s expects a positive number, got %q", key, value)
		}
		parsed = n
	}

	v := newViper(path)
	if err := read(v, path); err != nil {
		return err
	}
	v.Set(key, parsed)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
