package config

import (
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Default returns the program's default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
		},
	}
}

// LoadConfiguration reads YAML configuration from path, layered over
// Default(). An empty path returns the defaults unchanged.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare renders the default configuration as YAML, for `dumpconfig --default`.
func Prepare() ([]byte, error) {
	return yaml.Marshal(Default())
}

// Dump renders cfg as YAML, for `dumpconfig`.
func Dump(cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = Default()
	}
	return yaml.Marshal(cfg)
}
