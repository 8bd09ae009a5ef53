package gitrepo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shipwright/internal/services"
)

type fakeExecutor struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeExecutor) Run(_ context.Context, _ string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return f.outputs[key], err
	}
	return f.outputs[key], nil
}

func newClient(t *testing.T, exec *fakeExecutor) *Client {
	t.Helper()
	client, err := New("/repo", "git", WithExecutor(exec))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestCommitCountParsesOutput(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"rev-list --count HEAD": " 41 \n"}}
	client := newClient(t, exec)

	count, err := client.CommitCount(context.Background())
	if err != nil {
		t.Fatalf("CommitCount: %v", err)
	}
	if count != 41 {
		t.Fatalf("count = %d, want 41", count)
	}
}

func TestCommitCountEmptyRepositoryIsZero(t *testing.T) {
	exec := &fakeExecutor{
		outputs: map[string]string{},
		errs:    map[string]error{"rev-list --count HEAD": errors.New("fatal: ambiguous argument 'HEAD': unknown revision or path")},
	}
	client := newClient(t, exec)

	count, err := client.CommitCount(context.Background())
	if err != nil {
		t.Fatalf("CommitCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestCommitCountSurfacesToolErrors(t *testing.T) {
	exec := &fakeExecutor{errs: map[string]error{"rev-list --count HEAD": errors.New("fatal: not a git repository")}}
	client := newClient(t, exec)

	if _, err := client.CommitCount(context.Background()); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestHasChanges(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"status --porcelain": " M module.prop\n"}}
	client := newClient(t, exec)

	dirty, err := client.HasChanges(context.Background())
	if err != nil {
		t.Fatalf("HasChanges: %v", err)
	}
	if !dirty {
		t.Fatal("expected changes")
	}

	exec.outputs["status --porcelain"] = "  \n"
	dirty, err = client.HasChanges(context.Background())
	if err != nil {
		t.Fatalf("HasChanges: %v", err)
	}
	if dirty {
		t.Fatal("whitespace-only status should read clean")
	}
}

func TestCommitAllStagesThenCommits(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{}}
	client := newClient(t, exec)

	if err := client.CommitAll(context.Background(), "release: v1.1"); err != nil {
		t.Fatalf("CommitAll: %v", err)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("expected add+commit, got %v", exec.calls)
	}
	if exec.calls[0][0] != "add" || exec.calls[1][0] != "commit" {
		t.Fatalf("unexpected call order: %v", exec.calls)
	}
}

func TestCommitAllRequiresMessage(t *testing.T) {
	client := newClient(t, &fakeExecutor{})
	if err := client.CommitAll(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPushRequiresBranch(t *testing.T) {
	client := newClient(t, &fakeExecutor{})
	if err := client.Push(context.Background(), ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	if _, err := New("", "git"); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
