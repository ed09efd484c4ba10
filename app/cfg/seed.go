package cfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed holds channel settings overrides loaded from a YAML file. Only the
// fields present in the file override the built-in defaults.
type Seed struct {
	Title          *string `yaml:"title"`
	Description    *string `yaml:"description"`
	Link           *string `yaml:"link"`
	Language       *string `yaml:"language"`
	Copyright      *string `yaml:"copyright"`
	ManagingEditor *string `yaml:"managing_editor"`
	Webmaster      *string `yaml:"webmaster"`
	Generator      *string `yaml:"generator"`
	ImageURL       *string `yaml:"image_url"`
	ImageTitle     *string `yaml:"image_title"`
	ImageLink      *string `yaml:"image_link"`
}

// LoadSeed reads a channel seed file. An empty path means no overrides.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}
