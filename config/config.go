package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string         `mapstructure:"port"`
	LogLevel string         `mapstructure:"log_level"`
	LogJSON  bool           `mapstructure:"log_json"`
	AI       AIConfig       `mapstructure:"ai"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Pacing   PacingConfig   `mapstructure:"pacing"`
	Document DocumentConfig `mapstructure:"document"`
}

type AIConfig struct {
	Provider     string   `mapstructure:"provider"`
	BaseURL      string   `mapstructure:"base_url"`
	APIKey       string   `mapstructure:"api_key"`
	APIKeys      []string `mapstructure:"api_keys"`
	Model        string   `mapstructure:"model"`
	SummaryModel string   `mapstructure:"summary_model"`
	QAModel      string   `mapstructure:"qa_model"`
}

type LimitsConfig struct {
	MaxUploadBytes   int64 `mapstructure:"max_upload_bytes"`
	SummaryCharLimit int   `mapstructure:"summary_char_limit"`
	ChunkWords       int   `mapstructure:"chunk_words"`
}

type PacingConfig struct {
	MinInterval    time.Duration `mapstructure:"min_interval"`
	Burst          int           `mapstructure:"burst"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	RetryMaxDelay  time.Duration `mapstructure:"retry_max_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DocumentConfig struct {
	Store       string        `mapstructure:"store"`
	TTL         time.Duration `mapstructure:"ttl"`
	TokenSecret string        `mapstructure:"token_secret"`
	BoltPath    string        `mapstructure:"bolt_path"`
	MongoURI    string        `mapstructure:"mongo_uri"`
	MongoDB     string        `mapstructure:"mongo_db"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("ai.provider", "huggingface")

	v.SetDefault("limits.max_upload_bytes", 10<<20)
	v.SetDefault("limits.summary_char_limit", 3000)
	v.SetDefault("limits.chunk_words", 700)

	v.SetDefault("pacing.min_interval", 1500*time.Millisecond)
	v.SetDefault("pacing.burst", 1)
	v.SetDefault("pacing.max_retries", 2)
	v.SetDefault("pacing.retry_base_delay", time.Second)
	v.SetDefault("pacing.retry_max_delay", 8*time.Second)
	v.SetDefault("pacing.request_timeout", 20*time.Second)

	v.SetDefault("document.store", "memory")
	v.SetDefault("document.ttl", 30*time.Minute)
	v.SetDefault("document.bolt_path", "docqa.db")
	v.SetDefault("document.mongo_db", "docqa")
}

// LoadConfig reads the YAML file at configPath when it exists and overlays
// environment variables. A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.BindEnv("port", "PORT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.api_key", "AI_API_KEY", "HUGGINGFACE_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("ai.model", "AI_MODEL")
	v.BindEnv("document.token_secret", "DOCUMENT_TOKEN_SECRET")
	v.BindEnv("document.mongo_uri", "MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// GEMINI_API_KEYS is a comma separated list, viper does not split env values
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		config.AI.APIKeys = splitKeys(keys)
	}
	if len(config.AI.APIKeys) == 0 && config.AI.APIKey != "" {
		config.AI.APIKeys = []string{config.AI.APIKey}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "huggingface", "openai", "gemini", "ollama":
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	switch c.Document.Store {
	case "memory", "bolt", "mongo":
	default:
		return fmt.Errorf("unknown document store %q", c.Document.Store)
	}
	if c.Document.Store == "mongo" && c.Document.MongoURI == "" {
		return errors.New("document.mongo_uri is required for the mongo store")
	}
	if c.Limits.ChunkWords <= 0 {
		return errors.New("limits.chunk_words must be positive")
	}
	if c.Pacing.MaxRetries < 0 {
		return errors.New("pacing.max_retries must not be negative")
	}
	return nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
