package config

import "testing"

func TestServerConfigPortForms(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{"", ":8080"},
		{"9000", ":9000"},
		{":9000", ":9000"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
		{"  8081  ", ":8081"},
	}

	for _, tc := range cases {
		t.Setenv("PORT", tc.port)
		server, err := loadServerConfig()
		if err != nil {
			t.Fatalf("PORT=%q: unexpected error %v", tc.port, err)
		}
		if server.Addr != tc.want {
			t.Errorf("PORT=%q: Addr = %q, want %q", tc.port, server.Addr, tc.want)
		}
	}
}

func TestServerConfigRejectsGarbage(t *testing.T) {
	t.Setenv("PORT", "80 80")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  AIConfig
		want bool
	}{
		{"empty", AIConfig{}, false},
		{"model only", AIConfig{Model: "m"}, false},
		{"api key", AIConfig{Model: "m", APIKey: "k"}, true},
		{"ak/sk pair", AIConfig{Model: "m", AccessKey: "a", SecretKey: "s"}, true},
		{"ak without sk", AIConfig{Model: "m", AccessKey: "a"}, false},
	}

	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Errorf("%s: Enabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLoadAIConfigOptionalTuning(t *testing.T) {
	t.Setenv("ARK_TEMPERATURE", "0.7")
	t.Setenv("ARK_MAX_TOKENS", "2048")

	ai, err := loadAIConfig()
	if err != nil {
		t.Fatalf("loadAIConfig err: %v", err)
	}
	if ai.Temperature == nil || *ai.Temperature != 0.7 {
		t.Fatalf("Temperature = %v", ai.Temperature)
	}
	if ai.MaxTokens == nil || *ai.MaxTokens != 2048 {
		t.Fatalf("MaxTokens = %v", ai.MaxTokens)
	}
}

func TestLoadAIConfigRejectsBadTuning(t *testing.T) {
	t.Setenv("ARK_TEMPERATURE", "hot")
	if _, err := loadAIConfig(); err == nil {
		t.Fatal("expected error for non-numeric ARK_TEMPERATURE")
	}
}

func TestRedisConfigEnabled(t *testing.T) {
	if (RedisConfig{}).Enabled() {
		t.Fatal("empty URL must disable the mirror")
	}
	if !(RedisConfig{URL: "redis://localhost:6379"}).Enabled() {
		t.Fatal("set URL must enable the mirror")
	}
}

func TestWeatherConfigDefaults(t *testing.T) {
	cfg := loadWeatherConfig()
	if cfg.Latitude != 39.0056 || cfg.Longitude != -74.8157 {
		t.Fatalf("unexpected festival coordinates: %v,%v", cfg.Latitude, cfg.Longitude)
	}
}
