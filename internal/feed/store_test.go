package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsNil(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "update.json"))
	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record != nil {
		t.Fatal("expected nil record for missing feed")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "update.json"))
	record := &Record{
		Version:     "v1.2",
		VersionCode: 12,
		ZipURL:      "https://github.com/acme/fog-module/releases/download/v1.2/install.zip",
		Changelog:   "https://raw.githubusercontent.com/acme/fog-module/main/CHANGELOG.md",
	}
	if err := store.Save(record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *reloaded != *record {
		t.Fatalf("round trip mismatch: %+v != %+v", reloaded, record)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Fatal("feed file should end with a newline")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewStore(path).Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
