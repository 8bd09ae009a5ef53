// Package testsupport provides fixtures shared across package tests: seeded
// configs with per-test temp directories, repository file helpers, and stub
// executables.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"shipwright/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The repository tree lives under <base>/repo and the journal under
// <base>/journal.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Repo.Path = filepath.Join(base, "repo")
	cfgVal.Repo.Owner = "acme"
	cfgVal.Repo.Name = "fog-module"
	cfgVal.Journal.Dir = filepath.Join(base, "journal")

	if err := os.MkdirAll(cfgVal.Repo.Path, 0o755); err != nil {
		t.Fatalf("mkdir repo dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithRepoName overrides the hosting repository name on the test config.
func WithRepoName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Repo.Name = name
	}
}

// WithExcludeLists sets the packaging exclusion list file names.
func WithExcludeLists(lists ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Release.ExcludeLists = lists
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, git is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"git"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		if t, ok := b.t.(*testing.T); ok {
			t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
		}
	}
}
