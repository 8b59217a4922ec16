package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := &Config{
		Servers: []Server{
			{URL: "https://shop.example.com", Alias: "production"},
			{URL: "https://staging.shop.example.com", Alias: "staging"},
		},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(loaded.Servers) != 2 {
		t.Fatalf("servers = %d, want 2", len(loaded.Servers))
	}
	if loaded.Servers[0].URL != "https://shop.example.com" {
		t.Errorf("url = %q, want %q", loaded.Servers[0].URL, "https://shop.example.com")
	}
	if loaded.Servers[1].Alias != "staging" {
		t.Errorf("alias = %q, want %q", loaded.Servers[1].Alias, "staging")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

func TestGetServerByAlias(t *testing.T) {
	cfg := &Config{
		Servers: []Server{
			{URL: "https://shop.example.com", Alias: "production"},
			{URL: "https://staging.shop.example.com", Alias: "staging"},
		},
	}

	server, err := cfg.GetServerByAlias("staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server.URL != "https://staging.shop.example.com" {
		t.Errorf("url = %q, want staging url", server.URL)
	}

	if _, err := cfg.GetServerByAlias("nope"); err == nil {
		t.Error("expected error for unknown alias, got nil")
	}
}

func TestGetDefaultServer(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetDefaultServer(); err == nil {
		t.Error("expected error for empty config, got nil")
	}

	cfg.Servers = []Server{{URL: "https://shop.example.com", Alias: "production"}}
	server, err := cfg.GetDefaultServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server.Alias != "production" {
		t.Errorf("alias = %q, want production", server.Alias)
	}
}

func TestFindConfigFileWalksParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, ConfigFileName)
	if err := Save(cfgPath, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Resolve symlinks, macOS tempdirs live under /private
	wantResolved, _ := filepath.EvalSymlinks(cfgPath)
	foundResolved, _ := filepath.EvalSymlinks(found)
	if foundResolved != wantResolved {
		t.Errorf("found = %q, want %q", foundResolved, wantResolved)
	}
}
