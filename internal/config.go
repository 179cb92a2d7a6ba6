package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBridge = "bridge"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Store  StoreConfig       `yaml:"store"`
	Auth   AuthConfig        `yaml:"auth"`
	Import ImportConfig      `yaml:"import"`
	View   ViewConfig        `yaml:"view"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
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

// StoreConfig selects the persistence backend.
//
// Backend controls where project state lives:
//   - "memory": in-process only, lost on restart. Suitable for tests
//     and throwaway sessions.
//   - "sqlite": a local SQLite file; Path must be non-empty.
//   - "bridge": a remote instance reached over HTTP; URL must be
//     non-empty. A local in-memory stand-in picks up writes whenever
//     the remote is unreachable.
type StoreConfig struct {
	Backend string       `yaml:"backend"`
	Path    string       `yaml:"path"`
	Bridge  BridgeConfig `yaml:"bridge"`
}

// BridgeConfig holds remote-instance connection settings.
type BridgeConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	if c.Backend == "" {
		c.Backend = BackendSQLite
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendSQLite, BackendBridge)),
	); err != nil {
		return err
	}
	if c.Backend == BackendSQLite && c.Path == "" {
		return fmt.Errorf("store: backend is %q but path is empty", BackendSQLite)
	}
	if c.Backend == BackendBridge && c.Bridge.URL == "" {
		return fmt.Errorf("store: backend is %q but bridge url is empty", BackendBridge)
	}
	return nil
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
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

// ViewConfig holds display-aggregate settings. ReviewBucket folds the
// review lane into another display column ("development" or "done");
// empty keeps review as its own column.
type ViewConfig struct {
	ReviewBucket string `yaml:"review_bucket"`
}

// ImportConfig holds the snapshot drop-directory settings. An empty Dir
// disables the importer.
type ImportConfig struct {
	Dir string `yaml:"dir"`
}

// Enabled returns true when the importer should run.
func (c ImportConfig) Enabled() bool {
	return c.Dir != ""
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
		Store: StoreConfig{
			Backend: BackendSQLite,
			Path:    "./raido.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
