package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const placeholderAPIKey = "your-api-key-here"

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Redis      RedisConfig
	Generation GenerationConfig
	Auth       AuthConfig
	Firebase   FirebaseConfig
	CORS       CORSConfig
	App        AppConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig describes the optional real relational store. The portal runs
// on mock data whenever the selected driver is missing any of its values.
type StoreConfig struct {
	Driver         string `env:"STORE_DRIVER" env-default:"rdsdata"`
	Region         string `env:"AWS_REGION"`
	ResourceARN    string `env:"AURORA_RESOURCE_ARN"`
	SecretARN      string `env:"AURORA_SECRET_ARN"`
	Database       string `env:"AURORA_DATABASE"`
	DSN            string `env:"DATABASE_DSN"`
	MaxConns       int32  `env:"DATABASE_MAX_CONNS" env-default:"10"`
	ReportSchedule string `env:"STORE_REPORT_SCHEDULE" env-default:"0 */15 * * * *"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Prefix   string `env:"REDIS_PREFIX" env-default:"portal:"`
}

type GenerationConfig struct {
	Provider    string        `env:"GENERATION_PROVIDER" env-default:"genai"`
	APIKey      string        `env:"GENERATION_API_KEY"`
	Model       string        `env:"GENERATION_MODEL" env-default:"gemini-2.5-flash"`
	ImageModel  string        `env:"GENERATION_IMAGE_MODEL" env-default:"imagen-3.0-generate-002"`
	OllamaURL   string        `env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
	OllamaModel string        `env:"OLLAMA_MODEL" env-default:"llama3.2"`
	Timeout     time.Duration `env:"GENERATION_TIMEOUT" env-default:"60s"`
	RatePerSec  float64       `env:"GENERATION_RATE" env-default:"2"`
	RateBurst   int           `env:"GENERATION_BURST" env-default:"4"`
}

type AuthConfig struct {
	JWTSecret    string        `env:"AUTH_JWT_SECRET" env-default:"dev-only-secret-change-me-please-32b"`
	JWTIssuer    string        `env:"AUTH_JWT_ISSUER" env-default:"prototype-portal"`
	SessionTTL   time.Duration `env:"AUTH_SESSION_TTL" env-default:"12h"`
	MockPassword string        `env:"AUTH_MOCK_PASSWORD" env-default:"admin123"`
}

type FirebaseConfig struct {
	CredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
}

type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	Version     string `env:"APP_VERSION" env-default:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" env-default:"prototype-portal"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case "rdsdata", "postgres":
	default:
		return fmt.Errorf("STORE_DRIVER must be rdsdata or postgres, got %q", c.Store.Driver)
	}

	switch c.Generation.Provider {
	case "genai", "ollama":
	default:
		return fmt.Errorf("GENERATION_PROVIDER must be genai or ollama, got %q", c.Generation.Provider)
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters")
	}

	return nil
}

// RealConfigured reports whether every value the selected driver needs is
// present. Availability is decided once at startup from this.
func (s StoreConfig) RealConfigured() bool {
	if s.Driver == "postgres" {
		return s.DSN != ""
	}
	return s.Region != "" && s.ResourceARN != "" && s.SecretARN != "" && s.Database != ""
}

// Enabled reports whether text and image generation may be called. Ollama runs
// locally and needs no key; hosted providers need a real one.
func (g GenerationConfig) Enabled() bool {
	if g.Provider == "ollama" {
		return g.OllamaURL != ""
	}
	key := strings.TrimSpace(g.APIKey)
	return key != "" && key != placeholderAPIKey
}

// Origins splits the comma-separated CORS origin list.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
