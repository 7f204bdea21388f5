// Package config loads the settings of a contract-test run.
//
// Settings come from, in increasing order of precedence: built-in defaults, an optional YAML
// file, and REQRES_ environment variables. In variable names a double underscore separates
// levels, so REQRES_LOG__REQUESTS=false sets log.requests.
package config

import (
	"io/fs"
	"net/url"
	"strings"

	"github.com/launchdarkly/http-contract-tests/spec"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	// DefaultFile is read if it exists and no other file was named.
	DefaultFile = "reqres.yaml"

	envPrefix = "REQRES_"
)

var defaults = map[string]interface{}{
	"base_uri":          "https://reqres.in",
	"base_path":         "/api",
	"headers.x-api-key": "reqres-free-v1",
	"log.requests":      true,
	"log.responses":     true,
}

type Config struct {
	BaseURI  string            `koanf:"base_uri"`
	BasePath string            `koanf:"base_path"`
	Headers  map[string]string `koanf:"headers"`
	Log      LogConfig         `koanf:"log"`
}

// LogConfig turns the logging hooks of the request and response specifications on or off.
type LogConfig struct {
	Requests  bool `koanf:"requests"`
	Responses bool `koanf:"responses"`
}

// Load reads the configuration. If path is empty, DefaultFile is used when present; a path
// that was given explicitly must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	filePath, required := path, true
	if filePath == "" {
		filePath, required = DefaultFile, false
	}
	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to read %s", filePath)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	for key, value := range defaults {
		if !k.Exists(key) {
			if err := k.Set(key, value); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the base URI is an absolute URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &spec.InvalidConfigError{Option: "base_uri", Message: "not an absolute URL: " + c.BaseURI}
	}
	return nil
}
