// Package config loads the server configuration from defaults, an optional
// YAML file and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	koanf "github.com/knadh/koanf/v2"
)

type Config struct {
	ListenAddr string `koanf:"listenAddr"`
	// Namespace holds the Storage and Datalab resources.
	Namespace string `koanf:"namespace"`
	// PrefixForName prefixes every derived workspace object name.
	PrefixForName string `koanf:"prefixForName"`
	// SessionMode is the datalab session policy: off, on or auto.
	SessionMode string `koanf:"sessionMode"`
	// AuthMode is either "gateway" (trust the forwarded claim) or "no"
	// (local development, full permissions for everyone).
	AuthMode string `koanf:"authMode"`
	// RegistrationURL receives product registrations; empty disables them.
	RegistrationURL string `koanf:"registrationUrl"`
}

var defaultConfig = Config{
	ListenAddr:    ":8080",
	Namespace:     "workspace",
	PrefixForName: "ws",
	SessionMode:   "auto",
	AuthMode:      "gateway",
}

// envKeys maps the environment surface onto config fields.
var envKeys = map[string]string{
	"LISTEN_ADDR":      "listenAddr",
	"NAMESPACE":        "namespace",
	"PREFIX_FOR_NAME":  "prefixForName",
	"SESSION_MODE":     "sessionMode",
	"AUTH_MODE":        "authMode",
	"REGISTRATION_URL": "registrationUrl",
}

// GetConfig loads the configuration. configPath may be empty or point to a
// YAML file; environment variables win over the file.
func GetConfig(configPath string) (*Config, error) {
	k := koanf.New(".")
	cfg := &Config{}

	if err := k.Load(structs.Provider(defaultConfig, "koanf"), nil); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SessionMode {
	case "off", "on", "auto":
	default:
		return fmt.Errorf("invalid sessionMode %q: must be off, on or auto", c.SessionMode)
	}
	switch c.AuthMode {
	case "gateway", "no":
	default:
		return fmt.Errorf("invalid authMode %q: must be gateway or no", c.AuthMode)
	}
	if c.Namespace == "" {
		return fmt.Errorf("namespace must not be empty")
	}
	return nil
}

// CurrentNamespace returns the namespace of the service account when running
// in cluster, or the configured namespace otherwise.
func CurrentNamespace(cfg *Config) string {
	b, err := os.ReadFile("/var/run/secrets/kubernetes.io/serviceaccount/namespace")
	if err != nil {
		return cfg.Namespace
	}
	return strings.TrimSpace(string(b))
}
