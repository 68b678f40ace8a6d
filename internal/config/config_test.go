package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "driveconfig")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `[meeta]
platform_url = https://drive.example.com
session_cookie = abc123

[drive.notifications]
enabled = true
show_upload_complete = false
show_upload_failed = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.PlatformURL != "https://drive.example.com" {
		t.Errorf("PlatformURL = %q", cfg.PlatformURL)
	}
	if cfg.SessionCookie != "abc123" {
		t.Errorf("SessionCookie = %q", cfg.SessionCookie)
	}
	if cfg.Notifications.ShowUploadComplete {
		t.Error("ShowUploadComplete should be false")
	}
	if !cfg.Notifications.ShowUploadFailed {
		t.Error("ShowUploadFailed should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MEETA_URL", "")
	t.Setenv("MEETA_SESSION", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if !cfg.Notifications.Enabled {
		t.Error("notifications should default to enabled")
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingPlatformURL) {
		t.Errorf("Validate() error = %v, want ErrMissingPlatformURL", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `[meeta]
platform_url = https://file.example.com
session_cookie = from-file
`)
	t.Setenv("MEETA_URL", "https://env.example.com")
	t.Setenv("MEETA_SESSION", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PlatformURL != "https://env.example.com" {
		t.Errorf("PlatformURL = %q, env should override file", cfg.PlatformURL)
	}
	if cfg.SessionCookie != "from-env" {
		t.Errorf("SessionCookie = %q, env should override file", cfg.SessionCookie)
	}
}

func TestValidateMissingSession(t *testing.T) {
	cfg := &Config{PlatformURL: "https://drive.example.com"}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingSession) {
		t.Errorf("Validate() error = %v, want ErrMissingSession", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "driveconfig")

	cfg := &Config{
		PlatformURL:   "https://drive.example.com",
		SessionCookie: "tok",
		Notifications: DefaultNotificationConfig(),
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("MEETA_URL", "")
	t.Setenv("MEETA_SESSION", "")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.PlatformURL != cfg.PlatformURL || loaded.SessionCookie != cfg.SessionCookie {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
