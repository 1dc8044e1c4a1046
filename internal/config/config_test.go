package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:            "8081",
				DBPath:          "./test.db",
				LogLevel:        "info",
				ShutdownTimeout: 30 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:            "abc",
				DBPath:          "./test.db",
				LogLevel:        "info",
				ShutdownTimeout: 30 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:            "0",
				DBPath:          "./test.db",
				LogLevel:        "info",
				ShutdownTimeout: 30 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:            "70000",
				DBPath:          "./test.db",
				LogLevel:        "info",
				ShutdownTimeout: 30 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "missing database path",
			config: Config{
				Port:            "8081",
				DBPath:          "",
				LogLevel:        "info",
				ShutdownTimeout: 30 * time.Second,
			},
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:            "8081",
				DBPath:          "./test.db",
				LogLevel:        "verbose",
				ShutdownTimeout: 30 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name: "shutdown timeout too small",
			config: Config{
				Port:            "8081",
				DBPath:          "./test.db",
				LogLevel:        "info",
				ShutdownTimeout: 100 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name: "shutdown timeout too large",
			config: Config{
				Port:            "8081",
				DBPath:          "./test.db",
				LogLevel:        "info",
				ShutdownTimeout: time.Hour,
			},
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDatabaseDirectory(t *testing.T) {
	cfg := Config{
		Port:            "8081",
		DBPath:          filepath.Join(t.TempDir(), "nested", "expensed.db"),
		LogLevel:        "info",
		ShutdownTimeout: 30 * time.Second,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		cfg := Config{LogLevel: tc.level}
		if got := cfg.SlogLevel(); got != tc.want {
			t.Fatalf("level %q: got %v want %v", tc.level, got, tc.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port: got %q", cfg.Port)
	}
	if cfg.DBPath == "" {
		t.Fatal("default db path must not be empty")
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("default shutdown timeout: got %v", cfg.ShutdownTimeout)
	}
}
