package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Organization != "DEMO" {
		t.Errorf("Config.Organization = %q, want DEMO", cfg.Organization)
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.Session.ExpiryTime != time.Hour {
		t.Errorf("Session.ExpiryTime = %v, want 1h", cfg.Webserver.Session.ExpiryTime)
	}

	if cfg.Webserver.Session.ReplayExpiryTime != 10*time.Minute {
		t.Errorf("Session.ReplayExpiryTime = %v, want 10m", cfg.Webserver.Session.ReplayExpiryTime)
	}

	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}

	if !cfg.Log.Console.Enabled {
		t.Error("Log.Console.Enabled should be true")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Organization: "DEMO",
				Webserver:    Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
		},
		{
			name: "missing port",
			config: Config{
				Organization: "DEMO",
				Webserver:    Webserver{URL: "http://localhost:8080"},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Organization: "DEMO",
				Webserver:    Webserver{Port: 8080},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "missing organization",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
			wantErr: ErrEmptyOrganization,
		},
		{
			name: "unknown engine",
			config: Config{
				Organization: "DEMO",
				DB:           DB{GormEngine: "oracle"},
				Webserver:    Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
			wantErr: ErrUnknownGormEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("validate() unexpected error = %v", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Organization: "DEMO",
		Webserver:    Webserver{Port: 8080, URL: "http://localhost:8080"},
	}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.DB.GormEngine != EngineMySQL {
		t.Errorf("GormEngine = %q, want %q", cfg.DB.GormEngine, EngineMySQL)
	}

	if cfg.Webserver.ShutDownTime != defaultShutDownTime {
		t.Errorf("ShutDownTime = %d, want %d", cfg.Webserver.ShutDownTime, defaultShutDownTime)
	}

	if cfg.Webserver.Session.ExpiryTime != defaultSessionExpiry {
		t.Errorf("Session.ExpiryTime = %v", cfg.Webserver.Session.ExpiryTime)
	}

	if cfg.Jobs.RoleExpirySpec != defaultRoleExpirySpec {
		t.Errorf("Jobs.RoleExpirySpec = %q", cfg.Jobs.RoleExpirySpec)
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	// Set JSON override environment variable
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}

	// untouched values survive the merge
	if cfg.Webserver.URL != "http://localhost:8080" {
		t.Errorf("Webserver.URL = %v", cfg.Webserver.URL)
	}
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	if _, err := ReadConfig(projectConfigPath(t)); err == nil {
		t.Fatal("expected error for broken JSON override")
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:        "Test",
		DevMode:      true,
		Organization: "DEMO",
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonStr, `"Organization": "DEMO"`) {
		t.Errorf("DumpConfigJSON() output should contain Organization, got %s", jsonStr)
	}
}
