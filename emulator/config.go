package emulator

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cogwork/cogvm/cpu"
)

// Config is the YAML-backed run configuration. Define values use
// source literal syntax, so "42" is an integer and "\"hi\"" is text.
type Config struct {
	MaxInstructions int               `yaml:"max_instructions,omitempty"`
	Trace           bool              `yaml:"trace,omitempty"`
	Define          map[string]string `yaml:"define,omitempty"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	conf := &Config{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}

	return conf, nil
}

// defines converts the configured define strings into machine values.
func (conf *Config) defines() (map[string]cpu.Value, error) {
	defines := map[string]cpu.Value{}
	for name, text := range conf.Define {
		value, err := cpu.ParseLiteral(text)
		if err != nil {
			return nil, &ErrConfig{Name: name, Err: err}
		}
		defines[name] = value
	}

	return defines, nil
}
