package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"shipwright/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// Service is the version-control surface the workflow depends on.
type Service interface {
	CommitCount(ctx context.Context) (int64, error)
	HasChanges(ctx context.Context) (bool, error)
	CommitAll(ctx context.Context, message string) error
	Push(ctx context.Context, branch string) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(executor Executor) Option {
	return func(c *Client) {
		if executor != nil {
			c.exec = executor
		}
	}
}

// WithTimeout bounds each git invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps git CLI interactions for a single working tree.
type Client struct {
	dir     string
	binary  string
	exec    Executor
	timeout time.Duration
}

// New constructs a git client rooted at dir.
func New(dir, binary string, opts ...Option) (*Client, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("repository directory required")
	}
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "git"
	}
	client := &Client{
		dir:     dir,
		binary:  binary,
		exec:    commandExecutor{binary: binary},
		timeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CommitCount returns the number of commits reachable from HEAD. A repository
// with no commits yet counts as zero.
func (c *Client) CommitCount(ctx context.Context) (int64, error) {
	out, err := c.run(ctx, "rev-list", "--count", "HEAD")
	if err != nil {
		// git reports "unknown revision" for HEAD before the first commit.
		if strings.Contains(err.Error(), "unknown revision") {
			return 0, nil
		}
		return 0, services.Wrap(services.ErrExternalTool, "git", "rev-list", "", err)
	}
	count, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "git", "rev-list", fmt.Sprintf("unparseable count %q", strings.TrimSpace(out)), err)
	}
	return count, nil
}

// HasChanges reports whether any tracked or new file differs from the last
// committed snapshot.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, services.Wrap(services.ErrExternalTool, "git", "status", "", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitAll stages every change and records a commit with the given message.
func (c *Client) CommitAll(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return services.Wrap(services.ErrValidation, "git", "commit", "commit message required", nil)
	}
	if _, err := c.run(ctx, "add", "-A"); err != nil {
		return services.Wrap(services.ErrExternalTool, "git", "add", "", err)
	}
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return services.Wrap(services.ErrExternalTool, "git", "commit", "", err)
	}
	return nil
}

// Push publishes the branch to origin.
func (c *Client) Push(ctx context.Context, branch string) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return services.Wrap(services.ErrValidation, "git", "push", "branch required", nil)
	}
	if _, err := c.run(ctx, "push", "origin", branch); err != nil {
		return services.Wrap(services.ErrExternalTool, "git", "push", "", err)
	}
	return nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(runCtx, c.dir, args...)
}

type commandExecutor struct {
	binary string
}

func (e commandExecutor) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = strings.TrimSpace(stdout.String())
		}
		if detail != "" {
			return stdout.String(), fmt.Errorf("%s %s: %w: %s", e.binary, strings.Join(args, " "), err, detail)
		}
		return stdout.String(), fmt.Errorf("%s %s: %w", e.binary, strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
