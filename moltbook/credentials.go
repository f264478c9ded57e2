package moltbook

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadCredentials reads the API key from a JSON credentials file of the form
// {"api_key": "..."}.
func LoadCredentials(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read credentials file: %w", err)
	}

	var creds struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parse credentials file: %w", err)
	}
	if creds.APIKey == "" {
		return "", fmt.Errorf("credentials file %s is missing api_key", path)
	}

	return creds.APIKey, nil
}
