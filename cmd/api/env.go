package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// dotEnvFilesVar names a comma separated list of env files to load instead
// of ./.env.
const dotEnvFilesVar = "DOTENV_FILES"

// loadDotEnv loads the configured env files, skipping any that do not exist.
// Variables already set in the process environment win over file values.
func loadDotEnv() error {
	files := []string{".env"}
	if v := os.Getenv(dotEnvFilesVar); v != "" {
		files = files[:0]
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}
