package config

import (
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/models"
)

func TestLoadGoalCategoriesDefaults(t *testing.T) {
	categories, err := LoadGoalCategories("")
	if err != nil {
		t.Fatalf("LoadGoalCategories(\"\") error = %v", err)
	}
	if len(categories) != len(models.DefaultGoalCategories) {
		t.Errorf("len(categories) = %d, want %d", len(categories), len(models.DefaultGoalCategories))
	}
}

func TestLoadGoalCategoriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := "categories:\n  - Travel\n  - Rainy Day\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	categories, err := LoadGoalCategories(path)
	if err != nil {
		t.Fatalf("LoadGoalCategories() error = %v", err)
	}
	want := []string{"Travel", "Rainy Day"}
	if len(categories) != len(want) || categories[0] != want[0] || categories[1] != want[1] {
		t.Errorf("categories = %v, want %v", categories, want)
	}
}

func TestLoadGoalCategoriesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGoalCategories(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "categories.yaml")
		if err := os.WriteFile(path, []byte("categories: []\n"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if _, err := LoadGoalCategories(path); err == nil {
			t.Error("expected error for empty category list")
		}
	})
}
