package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[repo]
owner = "acme"
name = "fog-module"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Repo.MetadataFile != "module.prop" {
		t.Fatalf("expected default metadata file, got %q", cfg.Repo.MetadataFile)
	}
	if cfg.Release.AssetName != "install.zip" {
		t.Fatalf("expected default asset name, got %q", cfg.Release.AssetName)
	}
	if cfg.Publish.RequestTimeout != 60 {
		t.Fatalf("expected default publish timeout, got %d", cfg.Publish.RequestTimeout)
	}
	if !filepath.IsAbs(cfg.Repo.Path) {
		t.Fatalf("repo path should be absolute, got %q", cfg.Repo.Path)
	}
}

func TestLoadDerivesOwnerNameFromRemote(t *testing.T) {
	cases := []struct {
		remote string
		owner  string
		name   string
	}{
		{"https://github.com/acme/fog-module.git", "acme", "fog-module"},
		{"git@github.com:acme/fog-module.git", "acme", "fog-module"},
		{"https://example.org/deep/acme/fog-module", "acme", "fog-module"},
	}
	for _, tc := range cases {
		path := writeConfig(t, "[repo]\nremote_url = \""+tc.remote+"\"\n")
		cfg, _, _, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", tc.remote, err)
		}
		if cfg.Repo.Owner != tc.owner || cfg.Repo.Name != tc.name {
			t.Fatalf("remote %s: got %s/%s, want %s/%s", tc.remote, cfg.Repo.Owner, cfg.Repo.Name, tc.owner, tc.name)
		}
	}
}

func TestLoadRejectsMissingIdentity(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \"info\"\n")
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error without owner/name")
	} else if !strings.Contains(err.Error(), "repo.owner") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := writeConfig(t, `
[repo]
owner = "acme"
name = "fog-module"

[logging]
format = "xml"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for logging format")
	}
}

func TestLoadRejectsMetadataFeedClash(t *testing.T) {
	path := writeConfig(t, `
[repo]
owner = "acme"
name = "fog-module"
metadata_file = "update.json"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error when metadata and feed files clash")
	}
}

func TestPublishTokenFromEnv(t *testing.T) {
	path := writeConfig(t, `
[repo]
owner = "acme"
name = "fog-module"

[publish]
token_env = "SHIPWRIGHT_TEST_TOKEN"
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Setenv("SHIPWRIGHT_TEST_TOKEN", "  secret  ")
	if got := cfg.PublishToken(); got != "secret" {
		t.Fatalf("expected trimmed token, got %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[publish]") {
		t.Fatal("sample config missing publish section")
	}
}

func TestSplitRemoteURLRejectsGarbage(t *testing.T) {
	if _, _, err := splitRemoteURL("not-a-remote"); err == nil {
		t.Fatal("expected error for unparseable remote")
	}
}
