package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Sanitize SanitizeConfig `mapstructure:"sanitize"`
	Notion   NotionConfig   `mapstructure:"notion" validate:"required"`
	Archive  ArchiveConfig  `mapstructure:"archive" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains the optional Postgres connection used for the
// per-user credential store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gtfield=TokenLifetimeMinutes"`
	CookieSecure                bool   `mapstructure:"cookie_secure"`
	CookieDomain                string `mapstructure:"cookie_domain"`
	// KeyEncryptionSecret seals stored per-user provider keys. Falls back to
	// JWTSecret when empty.
	KeyEncryptionSecret string `mapstructure:"key_encryption_secret" validate:"omitempty,min=32"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	OpenAI            ProviderConfig `mapstructure:"openai"`
	Groq              ProviderConfig `mapstructure:"groq"`
	Gemini            ProviderConfig `mapstructure:"gemini"`
	SynthesisProvider string         `mapstructure:"synthesis_provider" validate:"required,oneof=openai groq gemini"`
}

// SanitizeProfile selects the cleaning passes applied to one operation's output.
type SanitizeProfile struct {
	StripMarkdown bool     `mapstructure:"strip_markdown"`
	Scripts       []string `mapstructure:"scripts" validate:"dive,oneof=han hiragana katakana cyrillic latin_ext thai arabic"`
}

// SanitizeConfig holds one profile per generation operation.
type SanitizeConfig struct {
	Title     SanitizeProfile `mapstructure:"title"`
	Content   SanitizeProfile `mapstructure:"content"`
	Draft     SanitizeProfile `mapstructure:"draft"`
	Critique  SanitizeProfile `mapstructure:"critique"`
	Synthesis SanitizeProfile `mapstructure:"synthesis"`
}

// NotionConfig points at the user and article databases.
type NotionConfig struct {
	APIKey            string `mapstructure:"api_key" validate:"required"`
	UserDatabaseID    string `mapstructure:"user_database_id" validate:"required"`
	ArticleAPIKey     string `mapstructure:"article_api_key"`
	ArticleDatabaseID string `mapstructure:"article_database_id"`
}

// ArchiveConfig sizes the background article archiver.
type ArchiveConfig struct {
	QueueSize   int `mapstructure:"queue_size" validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}

// ArticleToken returns the token for the article database, which may differ
// from the user database token.
func (n NotionConfig) ArticleToken() string {
	if n.ArticleAPIKey != "" {
		return n.ArticleAPIKey
	}
	return n.APIKey
}
