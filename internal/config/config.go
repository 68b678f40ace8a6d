// Package config provides configuration management for the MEETA DRIVE client.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/ini.v1"
)

// Config holds the connection and notification settings for the client.
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\meeta\driveconfig
//   - Unix: ~/.config/meeta/driveconfig
//
// INI format:
//
//	[meeta]
//	platform_url = https://drive.meeta.example.com
//	session_cookie = <session-token>
//
//	[drive.notifications]
//	enabled = true
//	show_upload_complete = true
//	show_upload_failed = true
type Config struct {
	// PlatformURL is the base URL of the MEETA DRIVE backend.
	PlatformURL string `ini:"platform_url"`

	// SessionCookie is the value of the meeta_session cookie sent with
	// every request. The backend owns authentication; the client only
	// carries the credential.
	SessionCookie string `ini:"session_cookie"`

	// Notifications holds desktop notification settings. Mapped from its
	// own [drive.notifications] section, not from [meeta].
	Notifications NotificationConfig `ini:"-"`
}

// NotificationConfig contains settings for desktop notifications.
type NotificationConfig struct {
	// Enabled indicates whether notifications are shown. Default: true.
	Enabled bool `ini:"enabled"`

	// ShowUploadComplete shows a notification when an upload completes.
	// Default: true.
	ShowUploadComplete bool `ini:"show_upload_complete"`

	// ShowUploadFailed shows a notification when an upload fails.
	// Default: true.
	ShowUploadFailed bool `ini:"show_upload_failed"`
}

// Validation errors
var (
	ErrMissingPlatformURL = errors.New("platform_url is required")
	ErrMissingSession     = errors.New("session_cookie is required")
)

// DefaultNotificationConfig returns the default notification settings.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Enabled:            true,
		ShowUploadComplete: true,
		ShowUploadFailed:   true,
	}
}

// DefaultConfigPath returns the default path for the driveconfig file.
//   - Windows: %USERPROFILE%\.config\meeta\driveconfig
//   - Unix: ~/.config/meeta/driveconfig
func DefaultConfigPath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", "meeta")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "meeta")
	}

	return filepath.Join(configDir, "driveconfig"), nil
}

// Load reads the config from path. A missing file is not an error: the
// returned config then carries defaults plus environment overrides, and
// validation decides whether that is enough.
//
// Environment overrides (applied after the file):
//   - MEETA_URL overrides platform_url
//   - MEETA_SESSION overrides session_cookie
func Load(path string) (*Config, error) {
	cfg := &Config{
		Notifications: DefaultNotificationConfig(),
	}

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil {
		file, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}

		if err := file.Section("meeta").MapTo(cfg); err != nil {
			return nil, fmt.Errorf("failed to map [meeta] section: %w", err)
		}
		if err := file.Section("drive.notifications").MapTo(&cfg.Notifications); err != nil {
			return nil, fmt.Errorf("failed to map [drive.notifications] section: %w", err)
		}
	}

	if url := os.Getenv("MEETA_URL"); url != "" {
		cfg.PlatformURL = url
	}
	if session := os.Getenv("MEETA_SESSION"); session != "" {
		cfg.SessionCookie = session
	}

	return cfg, nil
}

// Validate checks that the config is usable for API calls.
func (c *Config) Validate() error {
	if c.PlatformURL == "" {
		return ErrMissingPlatformURL
	}
	if c.SessionCookie == "" {
		return ErrMissingSession
	}
	return nil
}

// Save writes the config back to path in INI format, creating the parent
// directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file := ini.Empty()
	if err := file.Section("meeta").ReflectFrom(c); err != nil {
		return fmt.Errorf("failed to encode [meeta] section: %w", err)
	}
	if err := file.Section("drive.notifications").ReflectFrom(&c.Notifications); err != nil {
		return fmt.Errorf("failed to encode [drive.notifications] section: %w", err)
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
