package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteBinding creates <root>/<name> with one file per entry in files.
// Keys may contain "/" to create nested files.
func WriteBinding(t testing.TB, root, name string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create binding %s: %v", dir, err)
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}
