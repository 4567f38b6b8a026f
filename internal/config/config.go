package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// GeminiAPIKey gates the generation endpoints: without it they return a
	// configuration error before any network call is attempted.
	GeminiAPIKey string `envconfig:"GOOGLE_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-pro"`

	// Embeddings default to the local model; an OpenAI key switches to the
	// hosted one.
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	UploadDir     string `envconfig:"UPLOAD_DIR" default:"./uploaded_docs"`
	EmbedCacheDir string `envconfig:"EMBED_CACHE_DIR" default:"./.fastembed"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("VERIFLOW", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// The unprefixed GOOGLE_API_KEY is what the Gemini tooling documents;
	// accept it when the prefixed variable is unset.
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// EnsureDirs creates the local working directories if they do not exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.UploadDir, c.EmbedCacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
