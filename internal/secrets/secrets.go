// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text
// files. Each file in the directory represents one secret: the filename
// is the key name and the file contents (trimmed) are the value.
//
// The explorer needs one key file, google-api-key. The GOOGLE_API_KEY
// environment variable takes precedence over the file.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GoogleAPIKeyFile is the key file name for the Gemini API.
const GoogleAPIKeyFile = "google-api-key"

// GoogleAPIKeyEnv is the environment variable override.
const GoogleAPIKeyEnv = "GOOGLE_API_KEY"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// GoogleAPIKey resolves the Gemini key: environment first, then the
// loaded secrets map. An empty return means no credential is available.
func GoogleAPIKey(loaded map[string]string) string {
	if v := strings.TrimSpace(os.Getenv(GoogleAPIKeyEnv)); v != "" {
		return v
	}
	return loaded[GoogleAPIKeyFile]
}
