package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// OrgOAuth describes the organization identity provider.
type OrgOAuth struct {
	ClientID     string
	ClientSecret string
	AuthorizeURL string
	TokenURL     string
	UserinfoURL  string

	// Reserved for signature verification of fallback tokens.
	JWKSURL string
	Issuer  string

	HTTPTimeout time.Duration
}

// Missing returns the names of the required settings that are not set.
func (o OrgOAuth) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"OAUTH_ORG_CLIENT_ID", o.ClientID},
		{"OAUTH_ORG_CLIENT_SECRET", o.ClientSecret},
		{"OAUTH_ORG_AUTHORIZE_URL", o.AuthorizeURL},
		{"OAUTH_ORG_TOKEN_URL", o.TokenURL},
		{"OAUTH_ORG_USERINFO_URL", o.UserinfoURL},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// Configured reports whether every required setting is present.
func (o OrgOAuth) Configured() bool {
	return len(o.Missing()) == 0
}

type Config struct {
	AppPort       string
	PublicBaseURL string

	LogLevel  string
	LogFormat string

	// Sessions are kept in process memory when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string

	// Optional; interactions go to InteractionLogPath when empty.
	DatabaseDSN        string
	InteractionLogPath string

	SessionTTL time.Duration

	LLMAPIKey  string
	LLMBaseURL string

	OrgOAuth OrgOAuth
}

// Load reads the process environment, seeded from a .env file in the
// working directory when one exists.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{

		AppPort:       getenv("APP_PORT", "8000"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		InteractionLogPath: getenv("INTERACTION_LOG_PATH", "logs/user_interactions.json"),

		SessionTTL: getduration("SESSION_TTL", 24*time.Hour),

		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMBaseURL: os.Getenv("LLM_BASE_URL"),

		OrgOAuth: OrgOAuth{
			ClientID:     os.Getenv("OAUTH_ORG_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_ORG_CLIENT_SECRET"),
			AuthorizeURL: os.Getenv("OAUTH_ORG_AUTHORIZE_URL"),
			TokenURL:     os.Getenv("OAUTH_ORG_TOKEN_URL"),
			UserinfoURL:  os.Getenv("OAUTH_ORG_USERINFO_URL"),
			JWKSURL:      os.Getenv("OAUTH_ORG_JWKS_URL"),
			Issuer:       os.Getenv("OAUTH_ORG_ISSUER"),
			HTTPTimeout:  getduration("OAUTH_ORG_HTTP_TIMEOUT", 10*time.Second),
		},
	}

	return cfg

}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
