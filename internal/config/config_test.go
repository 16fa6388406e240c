package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Auth: AuthConfig{APIKeys: map[string][]string{"key_t1": {"t1"}}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("HTTP.Port = %d, want 8000", cfg.HTTP.Port)
	}
	if cfg.HTTP.MaxBodySize != "1MB" {
		t.Errorf("HTTP.MaxBodySize = %q, want 1MB", cfg.HTTP.MaxBodySize)
	}
	if cfg.Database.Path != "./data/app.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.Database.WALEnabled() {
		t.Error("WAL must default to enabled")
	}
	if cfg.Limits.MaxTitleLen != 200 || cfg.Limits.MaxContentLen != 200000 || cfg.Limits.MaxTags != 20 {
		t.Errorf("unexpected payload limits %+v", cfg.Limits)
	}
	if cfg.Limits.DefaultPageSize != 10 || cfg.Limits.MaxPageSize != 50 {
		t.Errorf("unexpected page limits %+v", cfg.Limits)
	}
	if cfg.Metrics.MaxTenants != 10000 {
		t.Errorf("Metrics.MaxTenants = %d", cfg.Metrics.MaxTenants)
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.MaxBodyBytes() != 1000*1000 {
		t.Errorf("MaxBodyBytes = %d, want 1000000", cfg.HTTP.MaxBodyBytes())
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MaxBodySize(t *testing.T) {
	tests := []struct {
		size    string
		want    int64
		wantErr bool
	}{
		{"512KB", 512 * 1000, false},
		{"2MB", 2 * 1000 * 1000, false},
		{"1024", 1024, false},
		{"lots", 0, true},
		{"0", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.size, func(t *testing.T) {
			cfg := validConfig()
			cfg.HTTP.MaxBodySize = tc.size

			err := cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.HTTP.MaxBodyBytes() != tc.want {
				t.Errorf("MaxBodyBytes = %d, want %d", cfg.HTTP.MaxBodyBytes(), tc.want)
			}
		})
	}
}

func TestValidate_PageSizes(t *testing.T) {
	cfg := validConfig()
	cfg.Limits.DefaultPageSize = 60

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "default_page_size") {
		t.Fatalf("expected page size error, got %v", err)
	}
}

func TestValidate_APIKeys(t *testing.T) {
	tests := []struct {
		name string
		keys map[string][]string
		ok   bool
	}{
		{"none", nil, true},
		{"mapped", map[string][]string{"key": {"t1", "t2"}}, true},
		{"empty key", map[string][]string{" ": {"t1"}}, false},
		{"no tenants", map[string][]string{"secret-key": {}}, false},
		{"empty tenant", map[string][]string{"secret-key": {""}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Auth.APIKeys = tc.keys

			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
			if err != nil && strings.Contains(err.Error(), "secret-key") {
				t.Errorf("error leaks the key: %v", err)
			}
		})
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("KNWL_PORT", "9090")
	t.Setenv("API_KEYS_JSON", `{"key_t1": ["t1"], "key_t2": ["t2", "t3"]}`)

	data := []byte(`
http:
  port: ${KNWL_PORT:-8000}
  max_body_size: ${KNWL_MAX_BODY:-256KB}
database:
  path: ${DB_PATH:-./data/test.db}
  wal: false
auth:
  api_keys: ${API_KEYS_JSON:-}
logging:
  level: ${LOG_LEVEL:-info}
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("HTTP.Port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.HTTP.MaxBodyBytes() != 256*1000 {
		t.Errorf("MaxBodyBytes = %d", cfg.HTTP.MaxBodyBytes())
	}
	if cfg.Database.Path != "./data/test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Database.WALEnabled() {
		t.Error("WAL must be disabled")
	}
	if got := cfg.Auth.APIKeys["key_t2"]; len(got) != 2 || got[1] != "t3" {
		t.Errorf("Auth.APIKeys = %v", cfg.Auth.APIKeys)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestParse_EmptyAPIKeys(t *testing.T) {
	cfg, err := Parse([]byte("auth:\n  api_keys: ${KNWL_UNSET_KEYS:-}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Auth.APIKeys) != 0 {
		t.Errorf("Auth.APIKeys = %v, want empty", cfg.Auth.APIKeys)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port <= 0 {
		t.Errorf("HTTP.Port = %d", cfg.HTTP.Port)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KNWL_SET", "value")

	tests := []struct {
		in, want string
	}{
		{"a: ${KNWL_SET}", "a: value"},
		{"a: ${KNWL_UNSET}", "a: "},
		{"a: ${KNWL_UNSET:-fallback}", "a: fallback"},
		{"a: ${KNWL_SET:-fallback}", "a: value"},
	}
	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.in))); got != tc.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLimitsDomain(t *testing.T) {
	l := LimitsConfig{MaxTitleLen: 1, MaxContentLen: 2, MaxTags: 3, DefaultPageSize: 4, MaxPageSize: 5}.Domain()
	if l.MaxTitleLen != 1 || l.MaxContentLen != 2 || l.MaxTags != 3 || l.DefaultPageSize != 4 || l.MaxPageSize != 5 {
		t.Errorf("unexpected limits %+v", l)
	}
}
