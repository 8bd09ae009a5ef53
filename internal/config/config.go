package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Repo describes the repository whose module metadata this run manages.
type Repo struct {
	Path          string `toml:"path"`
	Owner         string `toml:"owner"`
	Name          string `toml:"name"`
	RemoteURL     string `toml:"remote_url"`
	Branch        string `toml:"branch"`
	MetadataFile  string `toml:"metadata_file"`
	FeedFile      string `toml:"feed_file"`
	ChangelogFile string `toml:"changelog_file"`
	ReadmeFile    string `toml:"readme_file"`
}

// Release contains packaging and commit settings for a release run.
type Release struct {
	AssetName      string   `toml:"asset_name"`
	ExcludeLists   []string `toml:"exclude_lists"`
	CommitTemplate string   `toml:"commit_template"`
	Push           bool     `toml:"push"`
}

// Publish contains configuration for the release-hosting API.
type Publish struct {
	APIBase        string `toml:"api_base"`
	UploadBase     string `toml:"upload_base"`
	TokenEnv       string `toml:"token_env"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Journal contains configuration for the run journal database.
type Journal struct {
	Dir string `toml:"dir"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shipwright.
//
// Configuration sections by subsystem:
//   - Repo: working tree location, hosting identity, watched file names
//   - Release: archive asset naming, exclusion lists, commit behavior
//   - Publish: release API endpoints and credentials
//   - Journal: run journal database location
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Repo          Repo          `toml:"repo"`
	Release       Release       `toml:"release"`
	Publish       Publish       `toml:"publish"`
	Journal       Journal       `toml:"journal"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shipwright/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and the owner/name pair resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shipwright.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the journal directory required for a run.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Journal.Dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Journal.Dir, err)
	}
	return nil
}

// MetadataPath returns the absolute path of the module metadata file.
func (c *Config) MetadataPath() string {
	return filepath.Join(c.Repo.Path, c.Repo.MetadataFile)
}

// FeedPath returns the absolute path of the update feed file.
func (c *Config) FeedPath() string {
	return filepath.Join(c.Repo.Path, c.Repo.FeedFile)
}

// ChangelogPath returns the absolute path of the changelog document.
func (c *Config) ChangelogPath() string {
	return filepath.Join(c.Repo.Path, c.Repo.ChangelogFile)
}

// ReadmePath returns the absolute path of the README document.
func (c *Config) ReadmePath() string {
	return filepath.Join(c.Repo.Path, c.Repo.ReadmeFile)
}

// GitBinary returns the git executable name.
func (c *Config) GitBinary() string {
	return "git"
}

// PublishToken resolves the release API token from the configured environment
// variable. Empty when unset; the publisher rejects unauthenticated requests.
func (c *Config) PublishToken() string {
	if strings.TrimSpace(c.Publish.TokenEnv) == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.Publish.TokenEnv))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
