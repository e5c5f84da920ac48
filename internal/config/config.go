package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// WebSocketConfig configures the optional websocket transport.
type WebSocketConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen" validate:"omitempty,hostname_port"`
}

// WindowConfig selects the host's top-level window. The first set field
// wins: id, then pid, then class. With none set the active window is used.
type WindowConfig struct {
	ID    uint32 `yaml:"id,omitempty"`
	PID   int    `yaml:"pid,omitempty" validate:"gte=0"`
	Class string `yaml:"class,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Config is the host configuration.
type Config struct {
	// SocketPath overrides the channel socket location; empty uses the
	// runtime directory.
	SocketPath  string          `yaml:"socket_path,omitempty" validate:"omitempty,filepath"`
	WebSocket   WebSocketConfig `yaml:"websocket"`
	Window      WindowConfig    `yaml:"window"`
	ScaleFactor int             `yaml:"scale_factor,omitempty" validate:"gte=0,lte=8"` // 0 = auto
	Log         LogConfig       `yaml:"log"`
}

// ValidationError ties a validation failure to a config path and, when
// loaded from a file, to its position.
type ValidationError struct {
	Path   string
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.File, e.Line, e.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		WebSocket: WebSocketConfig{
			Enabled: false,
			Listen:  "127.0.0.1:7341",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks every field and returns the first failure as a
// *ValidationError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if c.WebSocket.Enabled && strings.TrimSpace(c.WebSocket.Listen) == "" {
			return &ValidationError{Path: "websocket.listen", Err: fmt.Errorf("listen is required when websocket is enabled")}
		}
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	return &ValidationError{
		Path: yamlPath(first.Namespace()),
		Err:  fmt.Errorf("%s", formatValidationMessage(first)),
	}
}

// yamlPath turns "Config.websocket.listen" into "websocket.listen".
func yamlPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func formatValidationMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, e.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port address", field)
	case "filepath":
		return fmt.Sprintf("%s must be a file path", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
