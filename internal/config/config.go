package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultStorageKey is the key the task list is stored under.
const DefaultStorageKey = "todo-app-tasks"

// Config keeps runtime settings for the app.
type Config struct {
	DatabaseURL string         `mapstructure:"database_url"`
	StorageKey  string         `mapstructure:"storage_key"`
	Timezone    string         `mapstructure:"timezone"`
	Log         LogConfig      `mapstructure:"log"`
	Digest      DigestConfig   `mapstructure:"digest"`
	Telegram    TelegramConfig `mapstructure:"telegram"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DigestConfig schedules the daily summary. A positive Interval wins over Time.
type DigestConfig struct {
	Time     string        `mapstructure:"time"`
	Interval time.Duration `mapstructure:"interval"`
}

// TelegramConfig enables digest delivery when Token is set.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// Enabled reports whether a bot token was configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

// Load reads configuration from .env, an optional todo.yaml and TODO_* environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(viper.New())
}

// LoadFrom fills a Config using v. Exposed so tests can feed their own viper instance.
func LoadFrom(v *viper.Viper) (Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("todo")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "todo"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.trim()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database_url", "todo.db")
	v.SetDefault("storage_key", DefaultStorageKey)
	v.SetDefault("timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("digest.time", "08:00")
	v.SetDefault("digest.interval", time.Duration(0))
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", int64(0))
}

func (c *Config) trim() {
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.StorageKey = strings.TrimSpace(c.StorageKey)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Digest.Time = strings.TrimSpace(c.Digest.Time)
	c.Telegram.Token = strings.TrimSpace(c.Telegram.Token)

	if c.DatabaseURL == "" {
		c.DatabaseURL = "todo.db"
	}
	if c.StorageKey == "" {
		c.StorageKey = DefaultStorageKey
	}
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Digest.Interval < 0 {
		return fmt.Errorf("digest interval must not be negative")
	}
	if _, _, err := ParseClock(c.Digest.Time); err != nil {
		return err
	}
	if c.Telegram.Enabled() && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required when a token is set")
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ParseClock splits an HH:MM string.
func ParseClock(timeStr string) (hour, minute int, err error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", timeStr)
	}
	return hour, minute, nil
}
