package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config centraliza la configuración del servicio. Se carga una vez al arrancar y no se muta.
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	LLMProvider     string        `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	LLMBaseURL      string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel        string        `env:"LLM_MODEL" envDefault:"gpt-4.1-mini"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	GeminiModel     string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	LLMTimeout      time.Duration `env:"LLM_TIMEOUT" envDefault:"0s"`
	MaxInstances    int           `env:"MAX_INSTANCES" envDefault:"5"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrMissingAPIKey   = errors.New("missing api key for llm provider")
)

// LoadConfig carga la configuración desde variables de entorno y la valida.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate comprueba combinaciones que env no puede expresar con tags.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingAPIKey)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.LLMProvider)
	}
	if c.MaxInstances < 1 {
		return fmt.Errorf("MAX_INSTANCES must be >= 1, got %d", c.MaxInstances)
	}
	if c.LLMTimeout < 0 {
		return fmt.Errorf("LLM_TIMEOUT must not be negative, got %s", c.LLMTimeout)
	}
	return nil
}

// ActiveModel devuelve el modelo fijo del proveedor configurado.
func (c *Config) ActiveModel() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiModel
	}
	return c.LLMModel
}
