package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"shipwright/internal/config"
	"shipwright/internal/journal"
)

func seedJournal(t *testing.T, configPath string) {
	t.Helper()
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	run, err := store.NewRun(ctx, journal.TriggerWatch, false)
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	run.Version = "v1.4"
	run.VersionCode = 44
	run.SetCompleted(journal.OutcomePublished)
	if err := store.Update(ctx, run); err != nil {
		t.Fatalf("update run: %v", err)
	}
}

func TestStatusEmptyJournal(t *testing.T) {
	configPath := writeTestConfig(t)

	output, err := executeCommand(t, "status", "--config", configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(output, "No runs recorded yet") {
		t.Fatalf("unexpected output: %s", output)
	}
}

func TestStatusRendersRuns(t *testing.T) {
	configPath := writeTestConfig(t)
	seedJournal(t, configPath)

	output, err := executeCommand(t, "status", "--config", configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(output, "published v1.4") {
		t.Fatalf("missing latest-run summary: %s", output)
	}
	if !strings.Contains(output, "watch") || !strings.Contains(output, "44") {
		t.Fatalf("missing table content: %s", output)
	}
}

func TestStatusJSON(t *testing.T) {
	configPath := writeTestConfig(t)
	seedJournal(t, configPath)

	output, err := executeCommand(t, "status", "--json", "--config", configPath)
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}

	var views []runView
	if err := json.Unmarshal([]byte(output), &views); err != nil {
		t.Fatalf("decode output: %v\n%s", err, output)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 run, got %d", len(views))
	}
	if views[0].Outcome != string(journal.OutcomePublished) || views[0].Version != "v1.4" {
		t.Fatalf("unexpected view: %+v", views[0])
	}
}
