package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DashDir = "intune-dash"

const ConfigYamlFileName = "config.yaml"

const ConfigPathEnv = "INTUNE_DASH_CONFIG"

const DEFAULT_XDG_CONFIG_DIRNAME = ".config"

type configError struct {
	configPath string
	err        error
}

func (e configError) Error() string {
	return fmt.Sprintf(
		`Couldn't read the configuration file %s

Example of a config.yaml file:
%s
Original error: %v`,
		e.configPath,
		DefaultYAML(),
		e.err,
	)
}

func (e configError) Unwrap() error {
	return e.err
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed parsing config.yaml: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

// DefaultYAML renders the default configuration as YAML
func DefaultYAML() string {
	out, _ := yaml.Marshal(Default())
	return string(out)
}

// DefaultPath returns the config file location: $INTUNE_DASH_CONFIG, else
// $XDG_CONFIG_HOME/intune-dash/config.yaml, else ~/.config/intune-dash/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p, nil
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, DEFAULT_XDG_CONFIG_DIRNAME)
	}

	return filepath.Join(configDir, DashDir, ConfigYamlFileName), nil
}

func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// Validate checks cfg against its validation tags
func Validate(cfg Config) error {
	return newValidator().Struct(cfg)
}

// Parse decodes YAML on top of the defaults and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, parsingError{err: err}
	}
	if err := Validate(cfg); err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}

// ParseConfig loads the configuration. An explicit path must exist; the
// default location is optional and yields Default() when absent. The file is
// never created or written.
func ParseConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Default(), parsingError{err: err}
		}
		explicit = os.Getenv(ConfigPathEnv) != ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		return Default(), configError{configPath: path, err: err}
	}

	return Parse(data)
}
