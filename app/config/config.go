package config

import (
	"os"
	"strconv"
	"time"

	"lumina/app/assistant"
)

type Config struct {
	Port         string
	StoreURL     string
	StoreTimeout time.Duration
	DataDir      string
	CORSOrigin   string
	LogFormat    string
	// Draft assistant
	OpenAIKey   string
	DraftModel  string
	DraftAPIURL string
	// Web UI
	WebPort string
	APIURL  string
}

func Load() Config {
	return Config{
		Port:         getenv("PORT", "3000"),
		StoreURL:     getenv("STORE_URL", "mongodb://localhost:27017/lumina_blog"),
		StoreTimeout: getenvDuration("STORE_TIMEOUT", 2*time.Second),
		DataDir:      getenv("DATA_DIR", "data/lumina"),
		CORSOrigin:   getenv("CORS_ORIGIN", "*"),
		LogFormat:    getenv("LOG_FORMAT", "text"),
		OpenAIKey:    getenv("OPENAI_API_KEY", ""),
		DraftModel:   getenv("DRAFT_MODEL", assistant.DefaultModel),
		DraftAPIURL:  getenv("DRAFT_API_URL", assistant.DefaultAPIURL),
		WebPort:      getenv("WEB_PORT", "8080"),
		APIURL:       getenv("LUMINA_API_URL", "http://localhost:3000"),
	}
}

// Addr is the API listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// WebAddr is the web UI listen address.
func (c Config) WebAddr() string {
	return ":" + c.WebPort
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// getenvDuration accepts Go durations ("500ms") or whole seconds ("3").
func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
