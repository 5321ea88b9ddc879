package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service.env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	return path
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	t.Setenv(dotEnvFilesVar, filepath.Join(t.TempDir(), "absent.env"))

	if err := loadDotEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := writeEnvFile(t, "HTTP_ADDR=:7070\nMAX_POLYNOMIAL_COUNT=7\n")
	t.Setenv(dotEnvFilesVar, path)
	t.Setenv("HTTP_ADDR", ":9090")
	// Registered for cleanup, then unset so the file can provide it.
	t.Setenv("MAX_POLYNOMIAL_COUNT", "")
	os.Unsetenv("MAX_POLYNOMIAL_COUNT")

	if err := loadDotEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("HTTP_ADDR"); got != ":9090" {
		t.Fatalf("expected process value :9090 to win, got %q", got)
	}
	if got := os.Getenv("MAX_POLYNOMIAL_COUNT"); got != "7" {
		t.Fatalf("expected MAX_POLYNOMIAL_COUNT from file, got %q", got)
	}
}

func TestLoadDotEnvReportsMalformedFile(t *testing.T) {
	path := writeEnvFile(t, "NOT A VALID LINE 'unterminated\n")
	t.Setenv(dotEnvFilesVar, path)

	err := loadDotEnv()
	if err == nil {
		t.Fatal("expected an error for a malformed env file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to name %s, got %v", path, err)
	}
}
