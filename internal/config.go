package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Cache  CacheConfig       `yaml:"cache"`
	Editor EditorConfig      `yaml:"editor"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Editor.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// CacheConfig holds the local note snapshot cache configuration. An empty
// path disables the cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// EditorConfig holds editing-session tuning.
//
// DebounceMS is the coalescing window between the last keystroke and the
// persistence write. SSERefreshMS throttles collection.updated events on
// the change feed.
type EditorConfig struct {
	DebounceMS   int `yaml:"debounce_ms"`
	SSERefreshMS int `yaml:"sse_refresh_ms"`
}

// Debounce returns the coalescing window as a duration.
func (c *EditorConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// SSERefresh returns the change-feed throttle as a duration.
func (c *EditorConfig) SSERefresh() time.Duration {
	return time.Duration(c.SSERefreshMS) * time.Millisecond
}

// Validate validates the editor configuration.
func (c *EditorConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DebounceMS, validation.Required, validation.Min(1), validation.Max(10000)),
		validation.Field(&c.SSERefreshMS, validation.Min(0), validation.Max(60000)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
//
// OwnerID names the single account whose notes the server owns. It
// defaults to "local".
type AuthConfig struct {
	Mode    string `yaml:"mode"`
	Token   string `yaml:"token"`
	OwnerID string `yaml:"owner_id"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty fields for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if c.OwnerID == "" {
		c.OwnerID = "local"
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./notes.db",
		},
		Cache: CacheConfig{
			Path: "./notes-cache.json",
		},
		Editor: EditorConfig{
			DebounceMS:   400,
			SSERefreshMS: 2000,
		},
		Auth: AuthConfig{
			Mode:    AuthModeDisabled,
			OwnerID: "local",
		},
	}
}
