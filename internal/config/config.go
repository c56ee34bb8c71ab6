// internal/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"reflect"
	"strconv"

	"github.com/richard-senior/barchart/internal/logger"
)

// DefaultFile is read when no --config flag is given. It is optional.
const DefaultFile = "config.json"

type Config struct {
	ServerHost  string `json:"SERVER_HOST" env:"BARCHART_HOST"`
	ServerPort  int    `json:"SERVER_PORT" env:"BARCHART_PORT"`
	DataFile    string `json:"DATA_FILE" env:"BARCHART_DATA"`
	TemplateDir string `json:"TEMPLATE_DIR" env:"BARCHART_TEMPLATES"`
	Template    string `json:"TEMPLATE" env:"BARCHART_TEMPLATE"`
	Debug       bool   `json:"DEBUG" env:"BARCHART_DEBUG"`
	LogLevel    string `json:"LOG_LEVEL" env:"BARCHART_LOG_LEVEL"`
}

// Default mirrors a local development server: loopback on 5000 with
// auto-reload turned on.
func Default() *Config {
	return &Config{
		ServerHost: "127.0.0.1",
		ServerPort: 5000,
		DataFile:   "employees.csv",
		Template:   "bar.html",
		Debug:      true,
		LogLevel:   "info",
	}
}

// Load reads path over the defaults and then applies environment
// overrides. A missing file is not an error when path is DefaultFile.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode configuration %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultFile:
		logger.Debug("no %s found, using defaults", path)
	default:
		return nil, fmt.Errorf("open configuration: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv walks the env struct tags and overwrites any field whose
// variable is set to a non-empty value.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	configType := reflect.TypeOf(*c)
	configValue := reflect.ValueOf(c).Elem()

	for i := 0; i < configType.NumField(); i++ {
		field := configType.Field(i)
		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		envValue, ok := lookup(envName)
		if !ok || envValue == "" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Int:
			val, err := strconv.Atoi(envValue)
			if err != nil {
				return fmt.Errorf("%s: %w", envName, err)
			}
			configValue.Field(i).SetInt(int64(val))
		case reflect.String:
			configValue.Field(i).SetString(envValue)
		case reflect.Bool:
			val, err := strconv.ParseBool(envValue)
			if err != nil {
				return fmt.Errorf("%s: %w", envName, err)
			}
			configValue.Field(i).SetBool(val)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server port %d out of range", c.ServerPort)
	}
	if c.DataFile == "" {
		return errors.New("data file must be set")
	}
	if c.Template == "" {
		return errors.New("template name must be set")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Addr is the listen address, host:port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

func (c *Config) GetPortString() string {
	return strconv.Itoa(c.ServerPort)
}
