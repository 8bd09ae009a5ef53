package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"shipwright/internal/config"
	"shipwright/internal/logging"
	"shipwright/internal/services"
)

const userAgent = "shipwright/0.1.0"

// Request describes one release to publish.
type Request struct {
	Version    string
	AssetPath  string
	Prerelease bool
}

// Release identifies the created release.
type Release struct {
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
}

// Publisher is the release-publishing surface the workflow depends on.
type Publisher interface {
	Publish(ctx context.Context, req Request) (*Release, error)
}

// CollisionError reports a duplicate tag rejected by the release host. It
// unwraps to services.ErrCollision for classification.
type CollisionError struct {
	Tag string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("release %s already exists", e.Tag)
}

func (e *CollisionError) Unwrap() error {
	return services.ErrCollision
}

// Client publishes releases over the hosting platform's REST API.
type Client struct {
	apiBase    string
	uploadBase string
	owner      string
	name       string
	assetName  string
	token      string
	client     *http.Client
	logger     *slog.Logger
}

// NewClient builds a publisher from resolved configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	timeout := time.Duration(cfg.Publish.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiBase:    cfg.Publish.APIBase,
		uploadBase: cfg.Publish.UploadBase,
		owner:      cfg.Repo.Owner,
		name:       cfg.Repo.Name,
		assetName:  cfg.Release.AssetName,
		token:      cfg.PublishToken(),
		client:     &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(logger, "publish"),
	}
}

// Publish creates the tagged release and uploads the archive asset.
func (c *Client) Publish(ctx context.Context, req Request) (*Release, error) {
	version := strings.TrimSpace(req.Version)
	if version == "" {
		return nil, services.Wrap(services.ErrValidation, "publish", "create release", "version required", nil)
	}
	if strings.TrimSpace(req.AssetPath) == "" {
		return nil, services.Wrap(services.ErrValidation, "publish", "upload asset", "asset path required", nil)
	}

	release, err := c.createRelease(ctx, version, req.Prerelease)
	if err != nil {
		return nil, err
	}
	if err := c.uploadAsset(ctx, release.ID, req.AssetPath); err != nil {
		return nil, err
	}

	c.logger.Info("release published",
		logging.String(logging.FieldEventType, "publish_complete"),
		logging.String("version", version),
		logging.Bool("prerelease", req.Prerelease),
		logging.String("release_url", release.HTMLURL),
	)
	return release, nil
}

func (c *Client) createRelease(ctx context.Context, version string, prerelease bool) (*Release, error) {
	body, err := json.Marshal(map[string]any{
		"tag_name":   version,
		"name":       version,
		"prerelease": prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("encode release request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases", c.apiBase, c.owner, c.name)
	resp, err := c.do(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body), -1)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "publish", "create release", "", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusUnprocessableEntity:
		return nil, &CollisionError{Tag: version}
	default:
		return nil, services.Wrap(services.ErrExternalTool, "publish", "create release",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, readBody(resp.Body)), nil)
	}

	release := &Release{}
	if err := json.NewDecoder(resp.Body).Decode(release); err != nil {
		return nil, fmt.Errorf("decode release response: %w", err)
	}
	return release, nil
}

func (c *Client) uploadAsset(ctx context.Context, releaseID int64, assetPath string) error {
	file, err := os.Open(assetPath)
	if err != nil {
		return fmt.Errorf("open asset %s: %w", assetPath, err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat asset %s: %w", assetPath, err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/%d/assets?name=%s",
		c.uploadBase, c.owner, c.name, releaseID, url.QueryEscape(c.assetName))
	resp, err := c.do(ctx, http.MethodPost, endpoint, "application/zip", file, info.Size())
	if err != nil {
		return services.Wrap(services.ErrTransient, "publish", "upload asset", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return services.Wrap(services.ErrExternalTool, "publish", "upload asset",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, readBody(resp.Body)), nil)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader, contentLength int64) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if contentLength >= 0 {
		req.ContentLength = contentLength
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}

func readBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

var _ Publisher = (*Client)(nil)
