package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultConfigDir     = ".credvault"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	LogLevel      string `mapstructure:"log_level"`
	ConfigDir     string `mapstructure:"config_dir"`
	TokenPath     string `mapstructure:"token_path"`
	CachePath     string `mapstructure:"cache_path"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
}

// MustLoad loads the client configuration, creating the config directory on
// first run.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("ENABLE_TLS", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	config := &Config{
		Env:           viper.GetString("APP_ENV"),
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		ConfigDir:     configDir,
		TokenPath:     filepath.Join(configDir, "token"),
		CachePath:     filepath.Join(configDir, "cache.db"),
		EnableTLS:     viper.GetBool("ENABLE_TLS"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("configuration error: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
