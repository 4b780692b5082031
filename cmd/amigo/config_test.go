package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amigo.yaml")
	data := []byte("api_key: file-key\napi_key_id: file-key-id\nuser_id: file-user\norganization_id: file-org\nbase_url: https://file.example.com\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig() error = %v", err)
	}
	if fc.APIKey != "file-key" || fc.OrganizationID != "file-org" {
		t.Errorf("config = %+v", fc)
	}
	if fc.BaseURL != "https://file.example.com" {
		t.Errorf("BaseURL = %q", fc.BaseURL)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amigo.yaml")
	if err := os.WriteFile(path, []byte("api_key: [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadFileConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFileConfig_MissingExplicitPath(t *testing.T) {
	if _, err := loadFileConfig("/nonexistent/amigo.yaml"); err == nil {
		t.Error("explicitly named missing file should error")
	}
}
