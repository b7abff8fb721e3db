package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KOTOBA_CONFIG", "")
	t.Setenv("KOTOBA_STORE_URL", "https://store.example.com")
	t.Setenv("KOTOBA_STORE_API_KEY", "test-key")

	// Run from a directory with no kotoba.yaml.
	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.URL != "https://store.example.com" {
		t.Errorf("URL = %q", cfg.Store.URL)
	}
	if cfg.Store.WordsTable != "bccwj" || cfg.Store.TagsTable != "jlpt" {
		t.Errorf("table defaults = %q/%q", cfg.Store.WordsTable, cfg.Store.TagsTable)
	}
	if cfg.Store.TimeoutSeconds != 15 {
		t.Errorf("timeout default = %d", cfg.Store.TimeoutSeconds)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kotoba.yaml")
	yaml := `store:
  url: https://file.example.com
  api_key: file-key
  words_table: words
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KOTOBA_CONFIG", path)
	// Registers restoration, then clears: a set-but-empty env var would
	// otherwise override the file value.
	t.Setenv("KOTOBA_STORE_URL", "")
	os.Unsetenv("KOTOBA_STORE_URL")
	t.Setenv("KOTOBA_STORE_API_KEY", "")
	os.Unsetenv("KOTOBA_STORE_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Store.URL != "https://file.example.com" || cfg.Store.WordsTable != "words" {
		t.Errorf("file config not applied: %+v", cfg.Store)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("KOTOBA_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Store.TimeoutSeconds = 15
	if err := cfg.Validate(); err == nil {
		t.Error("missing url accepted")
	}
	cfg.Store.URL = "https://x"
	if err := cfg.Validate(); err == nil {
		t.Error("missing api key accepted")
	}
	cfg.Store.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
