package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.AXL.SetupDBDir != "" {
		t.Errorf("expected empty SetupDBDir, got '%s'", config.AXL.SetupDBDir)
	}
	if config.AXL.ProjectDir != "" {
		t.Errorf("expected empty ProjectDir, got '%s'", config.AXL.ProjectDir)
	}
	if config.Catalog.Path != "" {
		t.Errorf("expected empty catalog path, got '%s'", config.Catalog.Path)
	}
	if config.Output.Color != "auto" {
		t.Errorf("expected color mode 'auto', got '%s'", config.Output.Color)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
axl:
  setupdb_dir: /work/gm_tb_tran
  project_dir: /proj/gm

catalog:
  path: /var/sdbtool/catalog.db

output:
  color: never
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.AXL.SetupDBDir != "/work/gm_tb_tran" {
		t.Errorf("expected setupdb_dir '/work/gm_tb_tran', got '%s'", config.AXL.SetupDBDir)
	}
	if config.AXL.ProjectDir != "/proj/gm" {
		t.Errorf("expected project_dir '/proj/gm', got '%s'", config.AXL.ProjectDir)
	}
	if config.Catalog.Path != "/var/sdbtool/catalog.db" {
		t.Errorf("expected catalog path '/var/sdbtool/catalog.db', got '%s'", config.Catalog.Path)
	}
	if config.Output.Color != "never" {
		t.Errorf("expected color 'never', got '%s'", config.Output.Color)
	}
}

func TestLoadFromFileExpandsEnvVars(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_PROJECT_ROOT", "/mnt/projects/gm")

	configContent := `
axl:
  project_dir: ${TEST_PROJECT_ROOT}/work
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	config, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if config.AXL.ProjectDir != "/mnt/projects/gm/work" {
		t.Errorf("expected expanded project_dir, got '%s'", config.AXL.ProjectDir)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("axl: [not a mapping"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AXL_SETUPDB_DIR", "/env/sdb")
	t.Setenv("AXL_PROJECT_DIR", "/env/proj")
	t.Setenv("SDBTOOL_CATALOG", "/env/catalog.db")
	t.Setenv("SDBTOOL_COLOR", "never")

	config := Default()
	applyEnvOverrides(config)

	if config.AXL.SetupDBDir != "/env/sdb" {
		t.Errorf("expected SetupDBDir '/env/sdb', got '%s'", config.AXL.SetupDBDir)
	}
	if config.AXL.ProjectDir != "/env/proj" {
		t.Errorf("expected ProjectDir '/env/proj', got '%s'", config.AXL.ProjectDir)
	}
	if config.Catalog.Path != "/env/catalog.db" {
		t.Errorf("expected catalog path '/env/catalog.db', got '%s'", config.Catalog.Path)
	}
	if config.Output.Color != "never" {
		t.Errorf("expected color 'never', got '%s'", config.Output.Color)
	}
}

func TestCatalogPathDefault(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	config := Default()
	path, err := config.CatalogPath()
	if err != nil {
		t.Fatalf("CatalogPath failed: %v", err)
	}

	want := filepath.Join(tmpHome, ".config", "sdbtool", "catalog.db")
	if path != want {
		t.Errorf("expected default catalog path '%s', got '%s'", want, path)
	}
}

func TestValidate(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}

	config.Output.Color = "rainbow"
	if err := config.Validate(); err == nil {
		t.Error("expected error for invalid color mode")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "expanded")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_VAR}", "expanded"},
		{"prefix-${TEST_VAR}-suffix", "prefix-expanded-suffix"},
		{"no-vars", "no-vars"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := expandEnvVars(tt.input); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
