package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every runtime setting for the service.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Weather  WeatherConfig
	Search   SearchConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		AI:       ai,
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		Weather:  loadWeatherConfig(),
		Search:   loadSearchConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig holds the completion provider (Ark) settings.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// DatabaseConfig points at the durable Postgres store.
type DatabaseConfig struct {
	DSN string
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		DSN: getEnvOrDefault("DATABASE_URL", "host=localhost user=buddy password=buddy dbname=barefoot_buddy port=5432 sslmode=disable"),
	}
}

// RedisConfig points at the live location/presence mirror. Empty URL
// disables the mirror; group reads then hit Postgres directly.
type RedisConfig struct {
	URL string
}

// Enabled reports whether a Redis mirror was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{URL: strings.TrimSpace(os.Getenv("REDIS_URL"))}
}

// WeatherConfig describes the OpenWeatherMap proxy. Without an API key
// the service serves rotating mock data.
type WeatherConfig struct {
	APIKey    string
	BaseURL   string
	Latitude  float64
	Longitude float64
}

func loadWeatherConfig() WeatherConfig {
	// Wildwood, NJ by default.
	return WeatherConfig{
		APIKey:    strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		BaseURL:   getEnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		Latitude:  39.0056,
		Longitude: -74.8157,
	}
}

// SearchConfig describes the web-search tool backend.
type SearchConfig struct {
	BaseURL string
}

func loadSearchConfig() SearchConfig {
	return SearchConfig{
		BaseURL: getEnvOrDefault("SEARCH_BASE_URL", "https://api.duckduckgo.com/"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
