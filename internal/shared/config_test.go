package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 8000 {
			t.Errorf("expected server port 8000, got %d", config.Server.Port)
		}

		if config.Catalog.APIURL != "https://api.spotify.com/v1" {
			t.Errorf("expected spotify api url, got %s", config.Catalog.APIURL)
		}

		if config.Catalog.Timeout.Duration != 30*time.Second {
			t.Errorf("expected catalog timeout 30s, got %s", config.Catalog.Timeout)
		}

		if len(config.CORS.AllowedOrigins) != 1 || config.CORS.AllowedOrigins[0] != "*" {
			t.Errorf("expected CORS to allow every origin, got %v", config.CORS.AllowedOrigins)
		}

		if config.Credentials.Spotify.ClientID != "" {
			t.Errorf("expected no default client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Server.Addr() != DefaultConfig().Server.Addr() {
			t.Errorf("created config server address doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "0.0.0.0"
port = 8080
read_timeout = "5s"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[rate_limit]
requests_per_minute = 120
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected address 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Server.ReadTimeout.Duration != 5*time.Second {
			t.Errorf("expected read timeout 5s, got %s", config.Server.ReadTimeout)
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.RateLimit.RequestsPerMinute != 120 {
			t.Errorf("expected 120 requests per minute, got %d", config.RateLimit.RequestsPerMinute)
		}
		if config.Catalog.TokenURL != "https://accounts.spotify.com/api/token" {
			t.Errorf("expected missing keys to keep defaults, got token url %q", config.Catalog.TokenURL)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Bad Duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[catalog]\ntimeout = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for unparseable duration")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Run("CLIENT_ names win over SPOTIPY names", func(t *testing.T) {
			config := DefaultConfig()
			err := config.ApplyEnv(envMap(map[string]string{
				"CLIENT_ID":             "primary",
				"SPOTIPY_CLIENT_ID":     "fallback",
				"SPOTIPY_CLIENT_SECRET": "secret",
			}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Credentials.Spotify.ClientID != "primary" {
				t.Errorf("expected client id primary, got %s", config.Credentials.Spotify.ClientID)
			}
			if config.Credentials.Spotify.ClientSecret != "secret" {
				t.Errorf("expected fallback secret, got %s", config.Credentials.Spotify.ClientSecret)
			}
		})

		t.Run("port override", func(t *testing.T) {
			config := DefaultConfig()
			if err := config.ApplyEnv(envMap(map[string]string{"TRACKSCOPE_PORT": "9090"})); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Server.Port != 9090 {
				t.Errorf("expected port 9090, got %d", config.Server.Port)
			}
		})

		t.Run("bad port", func(t *testing.T) {
			config := DefaultConfig()
			err := config.ApplyEnv(envMap(map[string]string{"TRACKSCOPE_PORT": "eighty"}))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			id      string
			secret  string
			wantErr error
		}{
			{name: "both set", id: "id", secret: "secret"},
			{name: "missing id", secret: "secret", wantErr: ErrMissingCredentials},
			{name: "missing secret", id: "id", wantErr: ErrMissingCredentials},
			{name: "both missing", wantErr: ErrMissingCredentials},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				config.Credentials.Spotify.ClientID = tt.id
				config.Credentials.Spotify.ClientSecret = tt.secret

				err := config.Validate()
				if tt.wantErr == nil && err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}

		t.Run("bad port", func(t *testing.T) {
			config := DefaultConfig()
			config.Credentials.Spotify.ClientID = "id"
			config.Credentials.Spotify.ClientSecret = "secret"
			config.Server.Port = 0

			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("ResolveConfig Without File", func(t *testing.T) {
		t.Setenv("CLIENT_ID", "env_id")
		t.Setenv("CLIENT_SECRET", "env_secret")

		config, err := ResolveConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("expected env credentials to validate, got %v", err)
		}
	})
}
