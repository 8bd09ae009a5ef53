package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module.prop")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return NewStore(path)
}

func TestLoadMissingFileReturnsNilRecord(t *testing.T) {
	store := newStore(t, "")
	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record != nil {
		t.Fatal("expected nil record for missing file")
	}
}

func TestLoadToleratesWhitespaceAndAbsentKeys(t *testing.T) {
	store := newStore(t, "  id = fog-module  \nname=Fog Module\n  versionCode =  7 \n")
	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.ID != "fog-module" || record.Name != "Fog Module" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.VersionCode != 7 {
		t.Fatalf("versionCode = %d, want 7", record.VersionCode)
	}
	if record.Version != "" || record.Author != "" {
		t.Fatal("absent keys must read as empty strings")
	}
}

func TestLoadTreatsBadVersionCodeAsZero(t *testing.T) {
	store := newStore(t, "versionCode=banana\n")
	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.VersionCode != 0 {
		t.Fatalf("versionCode = %d, want 0", record.VersionCode)
	}
}

func TestSavePreservesUnknownKeysAndOrder(t *testing.T) {
	store := newStore(t, "# fog module\nid=fog-module\ncustomKey=keep-me\nversion=v1.0\nversionCode=5\n")
	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	record.Version = "v1.1"
	record.VersionCode = 6
	if err := store.Save(record); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{"# fog module", "id=fog-module", "customKey=keep-me", "version=v1.1", "versionCode=6"}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	// Keys the file never carried are appended.
	joined := string(data)
	for _, key := range []string{"name=", "author=", "description=", "updateJson="} {
		if !strings.Contains(joined, key) {
			t.Fatalf("expected appended key %q in %q", key, joined)
		}
	}
}

func TestSaveWithoutPriorLoadRendersCanonicalOrder(t *testing.T) {
	store := newStore(t, "")
	record := &Record{
		ID:          "fog-module",
		Name:        "Fog Module",
		Version:     "v0.1.0",
		VersionCode: 1,
		Author:      "acme",
		Description: "Fog Module magic module",
		UpdateJSON:  "https://example.test/update.json",
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
}
