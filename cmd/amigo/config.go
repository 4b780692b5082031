package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	amigo "github.com/amigo-ai/client-go"
)

// fileConfig mirrors the credential fields of the config file.
// Environment variables take precedence over file values.
type fileConfig struct {
	APIKey         string `yaml:"api_key"`
	APIKeyID       string `yaml:"api_key_id"`
	UserID         string `yaml:"user_id"`
	OrganizationID string `yaml:"organization_id"`
	BaseURL        string `yaml:"base_url"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fc, nil
		}
		path = filepath.Join(home, ".amigo.yaml")
		if _, err := os.Stat(path); err != nil {
			return fc, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// buildClient resolves configuration in order of increasing precedence:
// config file, environment (optionally loaded from --env-file), flags.
func buildClient() (*amigo.Client, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		// Best effort; a missing .env is fine.
		_ = godotenv.Load()
	}

	fc, err := loadFileConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := amigo.Config{
		APIKey:         fc.APIKey,
		APIKeyID:       fc.APIKeyID,
		UserID:         fc.UserID,
		OrganizationID: fc.OrganizationID,
		BaseURL:        fc.BaseURL,
	}

	env := amigo.ConfigFromEnv()
	if env.APIKey != "" {
		cfg.APIKey = env.APIKey
	}
	if env.APIKeyID != "" {
		cfg.APIKeyID = env.APIKeyID
	}
	if env.UserID != "" {
		cfg.UserID = env.UserID
	}
	if env.OrganizationID != "" {
		cfg.OrganizationID = env.OrganizationID
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return amigo.New(cfg)
}
