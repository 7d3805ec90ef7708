// Package config defines the application configuration, its defaults, and the
// viper wiring that loads it from file, environment, and flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Engine() EngineConfig
	LLM() LLMConfig
	Store() StoreConfig

	// Engine Setters
	SetEngineWorkerConcurrency(int)

	// LLM Setters
	SetLLMProvider(LLMProvider)
	SetLLMModel(string)
}

// Config holds the entire application configuration. Fields are exported so
// viper can unmarshal into them; external packages consume the Interface.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	EngineCfg EngineConfig `mapstructure:"engine" yaml:"engine"`
	LLMCfg    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	StoreCfg  StoreConfig  `mapstructure:"store" yaml:"store"`
}

// -- Interface Method Implementations (Getters) --

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Engine() EngineConfig { return c.EngineCfg }
func (c *Config) LLM() LLMConfig       { return c.LLMCfg }
func (c *Config) Store() StoreConfig   { return c.StoreCfg }

// -- Interface Method Implementations (Setters) --

func (c *Config) SetEngineWorkerConcurrency(w int) { c.EngineCfg.WorkerConcurrency = w }
func (c *Config) SetLLMProvider(p LLMProvider)     { c.LLMCfg.Provider = p }
func (c *Config) SetLLMModel(m string)             { c.LLMCfg.Model = m }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// WeightsConfig holds the default MCDA weight split applied when a request
// carries no buyer priorities. Weights are renormalized by their sum, so they
// need not add up to 1.
type WeightsConfig struct {
	Cost    float64 `mapstructure:"cost" yaml:"cost"`
	Quality float64 `mapstructure:"quality" yaml:"quality"`
	Speed   float64 `mapstructure:"speed" yaml:"speed"`
	Risk    float64 `mapstructure:"risk" yaml:"risk"`
}

// Sum returns the raw weight total.
func (w WeightsConfig) Sum() float64 { return w.Cost + w.Quality + w.Speed + w.Risk }

// EngineConfig configures the analysis pipeline.
type EngineConfig struct {
	// WorkerConcurrency bounds the number of vendors analyzed in parallel
	// during batch operations.
	WorkerConcurrency int `mapstructure:"worker_concurrency" yaml:"worker_concurrency"`
	// Rates maps upper-case currency codes to their conversion multiplier
	// into the base currency (USD). Unknown codes convert 1:1.
	Rates map[string]float64 `mapstructure:"rates" yaml:"rates"`
	// DefaultWeights is the weight split used when requests omit priorities.
	DefaultWeights WeightsConfig `mapstructure:"default_weights" yaml:"default_weights"`
}

// StoreConfig configures the in-memory result store.
type StoreConfig struct {
	// RecentCompareLimit is how many of the most recent analyses a comparison
	// falls back to when no ids are given.
	RecentCompareLimit int `mapstructure:"recent_compare_limit" yaml:"recent_compare_limit"`
}

// LLMProvider defines the supported AI extraction providers.
type LLMProvider string

const (
	// ProviderGemini extracts via the Gemini API when an API key is present.
	ProviderGemini LLMProvider = "gemini"
	// ProviderNone disables AI extraction; every analysis takes the
	// deterministic path.
	ProviderNone LLMProvider = "none"
)

// LLMConfig configures the AI extraction client.
type LLMConfig struct {
	Provider          LLMProvider   `mapstructure:"provider" yaml:"provider"`
	Model             string        `mapstructure:"model" yaml:"model"`
	APIKey            string        `mapstructure:"api_key" yaml:"-"`
	APITimeout        time.Duration `mapstructure:"api_timeout" yaml:"api_timeout"`
	Temperature       float32       `mapstructure:"temperature" yaml:"temperature"`
	MaxOutputTokens   int           `mapstructure:"max_output_tokens" yaml:"max_output_tokens"`
	MaxRetries        int           `mapstructure:"max_retries" yaml:"max_retries"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// Enabled reports whether AI extraction can actually run: a configured
// provider and a usable API key.
func (l LLMConfig) Enabled() bool {
	return l.Provider == ProviderGemini && l.APIKey != ""
}

// NewDefaultConfig creates a new configuration struct populated with default
// values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "nexus")
	v.SetDefault("logger.log_file", "nexus.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Engine --
	v.SetDefault("engine.worker_concurrency", 8)
	v.SetDefault("engine.rates", map[string]float64{
		"USD": 1.0,
		"EUR": 1.08,
		"GBP": 1.26,
		"INR": 0.012,
	})
	v.SetDefault("engine.default_weights.cost", 0.40)
	v.SetDefault("engine.default_weights.quality", 0.30)
	v.SetDefault("engine.default_weights.speed", 0.20)
	v.SetDefault("engine.default_weights.risk", 0.10)

	// -- Store --
	v.SetDefault("store.recent_compare_limit", 5)

	// -- LLM --
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.5-pro")
	v.SetDefault("llm.api_timeout", "90s")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_output_tokens", 0)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.requests_per_minute", 60)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	// Bind environment variables for sensitive data.
	v.BindEnv("llm.api_key", "NEXUS_GEMINI_API_KEY", "GEMINI_API_KEY")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Manually load the key if Unmarshal didn't pick it up.
	if cfg.LLMCfg.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			cfg.LLMCfg.APIKey = key
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.EngineCfg.WorkerConcurrency <= 0 {
		return fmt.Errorf("engine.worker_concurrency must be a positive integer")
	}
	if len(c.EngineCfg.Rates) == 0 {
		return fmt.Errorf("engine.rates must define at least one currency")
	}
	for code, rate := range c.EngineCfg.Rates {
		if rate <= 0 {
			return fmt.Errorf("engine.rates.%s must be a positive multiplier", code)
		}
	}
	if c.EngineCfg.DefaultWeights.Sum() <= 0 {
		return fmt.Errorf("engine.default_weights must sum to a positive value")
	}
	if c.StoreCfg.RecentCompareLimit <= 0 {
		return fmt.Errorf("store.recent_compare_limit must be a positive integer")
	}
	return c.LLMCfg.Validate()
}

// Validate checks the LLM configuration.
func (l LLMConfig) Validate() error {
	switch l.Provider {
	case ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("llm.provider %q is not supported", l.Provider)
	}
	if l.Provider == ProviderGemini && l.Model == "" {
		return fmt.Errorf("llm.model is required for the gemini provider")
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0.0 and 2.0")
	}
	if l.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative")
	}
	if l.RequestsPerMinute <= 0 {
		return fmt.Errorf("llm.requests_per_minute must be a positive integer")
	}
	return nil
}
