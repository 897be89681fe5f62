package config

import (
	"testing"
	"time"

	"lumina/app/assistant"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_URL", "STORE_TIMEOUT", "DATA_DIR", "CORS_ORIGIN", "LOG_FORMAT",
		"OPENAI_API_KEY", "DRAFT_MODEL", "DRAFT_API_URL", "WEB_PORT", "LUMINA_API_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "mongodb://localhost:27017/lumina_blog", cfg.StoreURL)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "", cfg.OpenAIKey)
	assert.Equal(t, assistant.DefaultModel, cfg.DraftModel)
	assert.Equal(t, assistant.DefaultAPIURL, cfg.DraftAPIURL)
	assert.Equal(t, ":8080", cfg.WebAddr())
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("STORE_URL", "badger:///tmp/lumina")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, "badger:///tmp/lumina", cfg.StoreURL)
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
}

func TestGetenvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", 2 * time.Second},
		{"duration", "500ms", 500 * time.Millisecond},
		{"seconds", "5", 5 * time.Second},
		{"garbage", "soon", 2 * time.Second},
		{"negative", "-1s", 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_TIMEOUT", tt.value)
			assert.Equal(t, tt.want, getenvDuration("STORE_TIMEOUT", 2*time.Second))
		})
	}
}
