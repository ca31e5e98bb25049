package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fintrack/internal/models"
)

// categoriesFile represents the YAML shape of a goal category override file:
//
//	categories:
//	  - Vacation
//	  - Emergency Fund
type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// LoadGoalCategories returns the goal category labels from the YAML file at
// path, or the built-in defaults when path is empty.
func LoadGoalCategories(path string) ([]string, error) {
	if path == "" {
		return models.DefaultGoalCategories, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	return file.Categories, nil
}
