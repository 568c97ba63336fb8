package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configSearchPaths are tried in order when no explicit config file is given.
var configSearchPaths = []string{
	"./config.yml",
	"./cmd/meetscribed/config.yml",
	"./config/config.yml",
}

// envSearchPaths are tried in order for a .env file.
var envSearchPaths = []string{
	".env",
	"./cmd/meetscribed/.env",
}

// Load reads configuration from an optional YAML file, a .env file, and
// environment variables (MEETSCRIBE_SERVER_PORT overrides server.port, and
// so on), then applies defaults and validates.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile == "" {
		configFile = findFirst(configSearchPaths)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	if envFile := findFirst(envSearchPaths); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env file %s: %v\n", envFile, err)
		}
	}

	v.SetEnvPrefix("MEETSCRIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findFirst(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
