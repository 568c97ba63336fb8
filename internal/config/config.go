// Package config loads and validates service configuration from a YAML file,
// a .env file, and environment variables.
package config

import (
	"fmt"

	"github.com/skillsenselab/meetscribe/internal/audio"
	llmopenai "github.com/skillsenselab/meetscribe/internal/llm/openai"
	"github.com/skillsenselab/meetscribe/internal/logger"
	"github.com/skillsenselab/meetscribe/internal/observability"
	"github.com/skillsenselab/meetscribe/internal/server"
	sttopenai "github.com/skillsenselab/meetscribe/internal/stt/openai"
)

// Config is the root service configuration.
type Config struct {
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Audio         audio.Config         `yaml:"audio" mapstructure:"audio"`
	Transcriber   TranscriberConfig    `yaml:"transcriber" mapstructure:"transcriber"`
	Chat          ChatConfig           `yaml:"chat" mapstructure:"chat"`
}

// TranscriberConfig selects and configures the speech-to-text backend.
type TranscriberConfig struct {
	Provider string           `yaml:"provider" mapstructure:"provider"`
	OpenAI   sttopenai.Config `yaml:"openai" mapstructure:"openai"`
}

// ChatConfig selects and configures the language-model backend.
type ChatConfig struct {
	Provider string           `yaml:"provider" mapstructure:"provider"`
	OpenAI   llmopenai.Config `yaml:"openai" mapstructure:"openai"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Audio.ApplyDefaults()
	if c.Transcriber.Provider == "" {
		c.Transcriber.Provider = "openai"
	}
	c.Transcriber.OpenAI.ApplyDefaults()
	if c.Chat.Provider == "" {
		c.Chat.Provider = "openai"
	}
	c.Chat.OpenAI.ApplyDefaults()
}

// Validate checks every section for invalid values.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	return nil
}
