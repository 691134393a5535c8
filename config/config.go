package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Email    EmailConfig    `mapstructure:"email"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig holds MySQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// SessionConfig holds admin session cookie settings. The cookie value is a
// signed token; ExpireDays is a sliding window renewed on every
// authenticated request.
type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireDays int           `mapstructure:"expire_days"`
	ExpireTime time.Duration `mapstructure:"-"`
}

// EmailConfig holds SMTP settings for password-reset mail.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	Dir       string `mapstructure:"dir"`
	MaxSizeMB int64  `mapstructure:"max_size_mb"`
}

// CacheConfig holds the optional Redis response cache for hot public
// endpoints. When Enabled is false or Redis is unreachable the middleware
// is a pass-through.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisPass  string `mapstructure:"redis_password"`
	RedisDB    int    `mapstructure:"redis_db"`
}

var (
	// GlobalConfig is the loaded configuration instance.
	GlobalConfig *Config
)

// LoadConfig loads configuration with the precedence
// external config file > embedded defaults, with GREENCAMPUS_* environment
// variables overriding both. configPath may be empty, in which case the
// usual locations are searched.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("warning: cannot read config file %s: %v", configPath, err)
		} else {
			log.Printf("merged external config: %s", configPath)
		}
	} else {
		external := viper.New()
		external.SetConfigName("config")
		external.SetConfigType("yaml")
		external.AddConfigPath(".")
		external.AddConfigPath("./config")
		external.AddConfigPath("/etc/greencampus")
		external.AddConfigPath("$HOME/.greencampus")

		if err := external.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(external.AllSettings()); err != nil {
				log.Printf("warning: merge external config: %v", err)
			} else {
				log.Printf("merged external config: %s", external.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("GREENCAMPUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Session.ExpireDays <= 0 {
		cfg.Session.ExpireDays = 7
	}
	cfg.Session.ExpireTime = time.Duration(cfg.Session.ExpireDays) * 24 * time.Hour

	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = 10
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 60
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig loads configuration and panics on failure.
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// GetConfig returns the loaded global configuration.
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("config not initialized, call LoadConfig first")
	}
	return GlobalConfig
}

// SafeErrorMessage returns err.Error() in development mode and the fallback
// in release mode, so internal query text never leaks to clients.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}

// PrintConfig logs the active configuration without secrets.
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("configuration:")
	log.Printf("  server: %s (mode: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  database: %s@%s:%s/%s",
		GlobalConfig.Database.Username,
		GlobalConfig.Database.Host,
		GlobalConfig.Database.Port,
		GlobalConfig.Database.DBName)
	log.Printf("  email: %v", GlobalConfig.Email.Enabled)
	log.Printf("  cache: %v (ttl %ds)", GlobalConfig.Cache.Enabled, GlobalConfig.Cache.TTLSeconds)
}
