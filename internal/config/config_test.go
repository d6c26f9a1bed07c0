package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
app:
  name: vortex-test
  port: 9001
database:
  driver: sqlite
  sqlite_path: test.db
jwt:
  access_secret: access
  refresh_secret: refresh
  access_expire_hours: 2
minio:
  endpoint: localhost:9000
  bucket: media
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "vortex-test" || cfg.App.Port != 9001 {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if got := cfg.JWT.AccessExpireDuration(); got != 2*time.Hour {
		t.Errorf("access ttl = %v, want 2h", got)
	}
	// 未配置的项取默认值
	if got := cfg.JWT.RefreshExpireDuration(); got != 240*time.Hour {
		t.Errorf("refresh ttl = %v, want 240h", got)
	}
	if cfg.Upload.MaxImageSize != 5<<20 {
		t.Errorf("max image size = %d", cfg.Upload.MaxImageSize)
	}
	if len(cfg.Upload.ImageExtensions) != 4 {
		t.Errorf("image extensions = %v", cfg.Upload.ImageExtensions)
	}
	if Get() != cfg {
		t.Error("Get() should return the loaded config")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VORTEX_APP_PORT", "7777")
	t.Setenv("VORTEX_JWT_ACCESS_SECRET", "from-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.App.Port)
	}
	if cfg.JWT.AccessSecret != "from-env" {
		t.Errorf("access secret = %q, want from-env", cfg.JWT.AccessSecret)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"missing secret", func(c *Config) { c.JWT.RefreshSecret = "" }, true},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }, true},
		{"es without hosts", func(c *Config) { c.Elasticsearch.Enabled = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Database: DatabaseConfig{Driver: "postgres"},
				JWT:      JWTConfig{AccessSecret: "a", RefreshSecret: "r"},
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
