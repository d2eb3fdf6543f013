package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "BLOGSMITH"

var allScripts = []string{"han", "hiragana", "katakana", "cyrillic", "latin_ext", "thai", "arabic"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout", "120s")
	v.SetDefault("server.cors_allowed_origins", []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"https://ktgktg.vercel.app",
	})

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 1440)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.cookie_secure", true)
	v.SetDefault("auth.cookie_domain", "")
	v.SetDefault("auth.key_encryption_secret", "")

	v.SetDefault("llm.openai.enabled", true)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.groq.enabled", true)
	v.SetDefault("llm.groq.api_key", "")
	v.SetDefault("llm.groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.groq.base_url", "https://api.groq.com/openai/v1/")
	v.SetDefault("llm.gemini.enabled", true)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash-lite")
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.synthesis_provider", "gemini")

	v.SetDefault("sanitize.title.strip_markdown", true)
	v.SetDefault("sanitize.title.scripts", allScripts)
	v.SetDefault("sanitize.content.strip_markdown", false)
	v.SetDefault("sanitize.content.scripts", allScripts)
	v.SetDefault("sanitize.draft.strip_markdown", true)
	v.SetDefault("sanitize.draft.scripts", allScripts)
	v.SetDefault("sanitize.critique.strip_markdown", false)
	v.SetDefault("sanitize.critique.scripts", allScripts)
	v.SetDefault("sanitize.synthesis.strip_markdown", true)
	v.SetDefault("sanitize.synthesis.scripts", []string{})

	v.SetDefault("notion.api_key", "")
	v.SetDefault("notion.user_database_id", "")
	v.SetDefault("notion.article_api_key", "")
	v.SetDefault("notion.article_database_id", "")

	v.SetDefault("archive.queue_size", 100)
	v.SetDefault("archive.worker_count", 2)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
