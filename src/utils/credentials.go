package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/put-finder/src/eventmodels"
)

func LoadCredentials(path string) (eventmodels.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return eventmodels.Credentials{}, fmt.Errorf("LoadCredentials: failed to read %s: %w", path, err)
	}

	var creds eventmodels.Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return eventmodels.Credentials{}, fmt.Errorf("LoadCredentials: failed to parse %s: %w", path, err)
	}

	if err := creds.Validate(); err != nil {
		return eventmodels.Credentials{}, fmt.Errorf("LoadCredentials: %s: %w", path, err)
	}

	return creds, nil
}

// SaveCredentials writes creds with owner-only permissions, replacing any existing file.
func SaveCredentials(path string, creds eventmodels.Credentials) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("SaveCredentials: %w", err)
	}

	data, err := yaml.Marshal(&creds)
	if err != nil {
		return fmt.Errorf("SaveCredentials: failed to marshal credentials: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("SaveCredentials: failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("SaveCredentials: failed to write %s: %w", path, err)
	}

	return nil
}
