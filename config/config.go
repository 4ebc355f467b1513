package config

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration read from a YAML file. Environment
// variables in the file are expanded before decoding; unknown fields
// are rejected.
type Config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	MaxRetries *int     `yaml:"max_retries"`
	Extensions []string `yaml:"extensions"`

	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig is the raw engine payload: a type tag plus the flat set
// of backend fields. Matching the payload to the variant the tag
// expects happens at pipeline entry, not here.
type EngineConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Languages []string `yaml:"languages"`

	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`

	Timeout  *int `yaml:"timeout"`
	Insecure bool `yaml:"insecure"`

	Limit *int `yaml:"limit"`
}

func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
