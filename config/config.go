package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       App             `mapstructure:"app"`
	Log       Logger          `mapstructure:"logger"`
	API       API             `mapstructure:"api"`
	Robinhood RobinhoodConfig `mapstructure:"robinhood"`
	Finnhub   FinnhubConfig   `mapstructure:"finnhub"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Cache     Cache           `mapstructure:"cache"`
}

type App struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Debug   bool   `mapstructure:"debug"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port                   int           `mapstructure:"port"`
	Prefix                 string        `mapstructure:"prefix"`
	AllowedOrigins         []string      `mapstructure:"allowed_origins"`
	RateLimitPerSecond     float64       `mapstructure:"rate_limit_per_second"`
	RateLimitBurst         int           `mapstructure:"rate_limit_burst"`
	ShutdownTimeout        time.Duration `mapstructure:"shutdown_timeout"`
	SessionRefreshSchedule string        `mapstructure:"session_refresh_schedule"`
}

type RobinhoodConfig struct {
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	BaseURL  string        `mapstructure:"base_url"`
	ClientID string        `mapstructure:"client_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type FinnhubConfig struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CompanyNewsLimit    int           `mapstructure:"company_news_limit"`
	GeneralNewsLimit    int           `mapstructure:"general_news_limit"`
	NewsMaxAgeDays      int           `mapstructure:"news_max_age_days"`
}

type GeminiConfig struct {
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxInputChars       int           `mapstructure:"max_input_chars"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

func setDefaults() {
	viper.SetDefault("app.name", "Portfolio Insight API")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.debug", false)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8000)
	viper.SetDefault("api.prefix", "/api")
	viper.SetDefault("api.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	viper.SetDefault("api.rate_limit_per_second", 10)
	viper.SetDefault("api.rate_limit_burst", 30)
	viper.SetDefault("api.shutdown_timeout", 10*time.Second)
	viper.SetDefault("api.session_refresh_schedule", "@every 12h")
	viper.SetDefault("robinhood.base_url", "https://api.robinhood.com")
	viper.SetDefault("robinhood.client_id", "c82SH0WZOsabOXGP2sxqcj34FxkvfnWRZBKlBjFS")
	viper.SetDefault("robinhood.timeout", 15*time.Second)
	viper.SetDefault("finnhub.base_url", "https://finnhub.io/api/v1")
	viper.SetDefault("finnhub.timeout", 10*time.Second)
	viper.SetDefault("finnhub.max_request_per_minute", 60)
	viper.SetDefault("finnhub.company_news_limit", 5)
	viper.SetDefault("finnhub.general_news_limit", 20)
	viper.SetDefault("finnhub.news_max_age_days", 30)
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", 30*time.Second)
	viper.SetDefault("gemini.max_input_chars", 2000)
	viper.SetDefault("gemini.max_request_per_minute", 15)
	viper.SetDefault("cache.default_expiration", 24*time.Hour)
	viper.SetDefault("cache.cleanup_interval", time.Hour)
}

func Load() (*Config, error) {
	// .env is optional, used for local development only
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fails fast on missing required credentials so the process does
// not start half-configured.
func (c *Config) Validate() error {
	var missing []string

	if c.Robinhood.Username == "" {
		missing = append(missing, "robinhood.username")
	}
	if c.Robinhood.Password == "" {
		missing = append(missing, "robinhood.password")
	}
	if c.Finnhub.APIKey == "" {
		missing = append(missing, "finnhub.api_key")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "gemini.api_key")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
