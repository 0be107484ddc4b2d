package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Robinhood: RobinhoodConfig{Username: "user", Password: "pass"},
		Finnhub:   FinnhubConfig{APIKey: "finnhub-key"},
		Gemini:    GeminiConfig{APIKey: "gemini-key"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("complete config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing username",
			mutate: func(c *Config) { c.Robinhood.Username = "" },
			want:   "robinhood.username",
		},
		{
			name:   "missing password",
			mutate: func(c *Config) { c.Robinhood.Password = "" },
			want:   "robinhood.password",
		},
		{
			name:   "missing finnhub key",
			mutate: func(c *Config) { c.Finnhub.APIKey = "" },
			want:   "finnhub.api_key",
		},
		{
			name:   "missing gemini key",
			mutate: func(c *Config) { c.Gemini.APIKey = "" },
			want:   "gemini.api_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "robinhood.username")
	assert.Contains(t, err.Error(), "gemini.api_key")
}
