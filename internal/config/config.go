// Package config loads the application configuration from a yaml file.
// Missing files and missing fields fall back to defaults, so a config
// file is never required.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

var (
	ErrInvalidChunkerMode = errors.New("invalid chunker mode")
)

const (
	ChunkerModeWindow   = "window"
	ChunkerModeSentence = "sentence"
)

type Config struct {
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Providers ProvidersConfig `yaml:"providers"`
}

type ChunkerConfig struct {
	Mode    string `yaml:"mode"`
	Size    int    `yaml:"size"`
	Overlap int    `yaml:"overlap"`
}

type RetrievalConfig struct {
	TopK   int  `yaml:"top_k"`
	Rerank bool `yaml:"rerank"`
}

type ProvidersConfig struct {
	Embedder   string `yaml:"embedder"`
	Completion string `yaml:"completion"`
	Searcher   string `yaml:"searcher"`
}

func DefaultConfig() Config {
	return Config{
		Chunker: ChunkerConfig{
			Mode:    ChunkerModeWindow,
			Size:    1000,
			Overlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
		},
		Providers: ProvidersConfig{
			Embedder:   "openai",
			Completion: "openai",
			Searcher:   "tavily",
		},
	}
}

// ReadConfig loads the yaml file at path on top of the defaults. A
// missing file returns the defaults unchanged.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(file, &c); err != nil {
		return c, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	if err := validate(c); err != nil {
		return c, err
	}

	return c, nil
}

func validate(c Config) error {
	switch c.Chunker.Mode {
	case ChunkerModeWindow, ChunkerModeSentence:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidChunkerMode, c.Chunker.Mode)
	}
	return nil
}
