package bootstrap

import (
	"context"
	"strings"
	"testing"

	"shipwright/internal/feed"
	"shipwright/internal/identity"
	"shipwright/internal/logging"
	"shipwright/internal/metadata"
	"shipwright/internal/testsupport"
)

func newInitializer(t *testing.T) (*Initializer, *metadata.Store, *feed.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	repo := identity.FromConfig(cfg)
	metaStore := metadata.NewStore(cfg.MetadataPath())
	feedStore := feed.NewStore(cfg.FeedPath())
	init := New(cfg, repo, metaStore, feedStore, logging.NewNop())
	return init, metaStore, feedStore, cfg.Repo.Path
}

func TestRunSynthesizesInitialState(t *testing.T) {
	init, metaStore, feedStore, repoPath := newInitializer(t)

	record, err := init.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if record.Version != "v0.1.0" || record.VersionCode != 1 {
		t.Fatalf("unexpected initial version state: %+v", record)
	}
	if record.ID != "fog-module" || record.Name != "Fog Module" {
		t.Fatalf("identity not derived: %+v", record)
	}

	persisted, err := metaStore.Load()
	if err != nil || persisted == nil {
		t.Fatalf("metadata not persisted: %v", err)
	}
	if persisted.UpdateJSON != "https://raw.githubusercontent.com/acme/fog-module/main/update.json" {
		t.Fatalf("unexpected feed url: %q", persisted.UpdateJSON)
	}

	feedRecord, err := feedStore.Load()
	if err != nil || feedRecord == nil {
		t.Fatalf("feed not persisted: %v", err)
	}
	if feedRecord.Version != "v0.1.0" || feedRecord.VersionCode != 1 {
		t.Fatalf("unexpected feed state: %+v", feedRecord)
	}
	if !strings.Contains(feedRecord.ZipURL, "/releases/download/v0.1.0/install.zip") {
		t.Fatalf("unexpected zip url: %q", feedRecord.ZipURL)
	}

	changelog := testsupport.ReadFile(t, repoPath+"/CHANGELOG.md")
	if !strings.Contains(changelog, "Initial release") {
		t.Fatalf("changelog missing initial entry: %q", changelog)
	}
	readme := testsupport.ReadFile(t, repoPath+"/README.md")
	if !strings.Contains(readme, "# Fog Module") {
		t.Fatalf("minimal readme not synthesized: %q", readme)
	}
}

func TestRunSubstitutesReadmePlaceholders(t *testing.T) {
	init, _, _, repoPath := newInitializer(t)
	testsupport.WriteRepoFile(t, repoPath, "README.md", "# {{MODULE_NAME}}\n\nInstall {{MODULE_ID}} from releases.\n")

	if _, err := init.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	readme := testsupport.ReadFile(t, repoPath+"/README.md")
	want := "# Fog Module\n\nInstall fog-module from releases.\n"
	if readme != want {
		t.Fatalf("readme = %q, want %q", readme, want)
	}
}

func TestRunLeavesPlainReadmeAlone(t *testing.T) {
	init, _, _, repoPath := newInitializer(t)
	testsupport.WriteRepoFile(t, repoPath, "README.md", "hand-written docs\n")

	if _, err := init.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := testsupport.ReadFile(t, repoPath+"/README.md"); got != "hand-written docs\n" {
		t.Fatalf("plain readme was modified: %q", got)
	}
}

func TestRunDoesNotDuplicateChangelog(t *testing.T) {
	init, _, _, repoPath := newInitializer(t)
	testsupport.WriteRepoFile(t, repoPath, "CHANGELOG.md", "## v0.9 (2026-01-01)\n\n- old entry\n")

	if _, err := init.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	changelog := testsupport.ReadFile(t, repoPath+"/CHANGELOG.md")
	if strings.Contains(changelog, "Initial release") {
		t.Fatalf("existing changelog must not gain entries: %q", changelog)
	}
}
