package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteRepoFile writes content at the given path relative to the config's
// repository tree, creating parent directories as needed.
func WriteRepoFile(t testing.TB, repoPath, relPath, content string) string {
	t.Helper()
	target := filepath.Join(repoPath, relPath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", relPath, err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", relPath, err)
	}
	return target
}

// ReadFile reads a file, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
