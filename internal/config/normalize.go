package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRepo(); err != nil {
		return err
	}
	c.normalizeRelease()
	c.normalizePublish()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRepo() error {
	var err error
	if strings.TrimSpace(c.Repo.Path) == "" {
		c.Repo.Path = defaultRepoPath
	}
	if c.Repo.Path, err = expandPath(c.Repo.Path); err != nil {
		return fmt.Errorf("repo.path: %w", err)
	}

	c.Repo.Owner = strings.TrimSpace(c.Repo.Owner)
	c.Repo.Name = strings.TrimSpace(c.Repo.Name)
	c.Repo.RemoteURL = strings.TrimSpace(c.Repo.RemoteURL)
	if (c.Repo.Owner == "" || c.Repo.Name == "") && c.Repo.RemoteURL != "" {
		owner, name, err := splitRemoteURL(c.Repo.RemoteURL)
		if err != nil {
			return fmt.Errorf("repo.remote_url: %w", err)
		}
		if c.Repo.Owner == "" {
			c.Repo.Owner = owner
		}
		if c.Repo.Name == "" {
			c.Repo.Name = name
		}
	}

	c.Repo.Branch = strings.TrimSpace(c.Repo.Branch)
	if c.Repo.Branch == "" {
		c.Repo.Branch = defaultBranch
	}
	c.Repo.MetadataFile = strings.TrimSpace(c.Repo.MetadataFile)
	if c.Repo.MetadataFile == "" {
		c.Repo.MetadataFile = defaultMetadataFile
	}
	c.Repo.FeedFile = strings.TrimSpace(c.Repo.FeedFile)
	if c.Repo.FeedFile == "" {
		c.Repo.FeedFile = defaultFeedFile
	}
	c.Repo.ChangelogFile = strings.TrimSpace(c.Repo.ChangelogFile)
	if c.Repo.ChangelogFile == "" {
		c.Repo.ChangelogFile = defaultChangelogFile
	}
	c.Repo.ReadmeFile = strings.TrimSpace(c.Repo.ReadmeFile)
	if c.Repo.ReadmeFile == "" {
		c.Repo.ReadmeFile = defaultReadmeFile
	}
	return nil
}

// splitRemoteURL extracts the owner/name pair from https and scp-style git
// remotes ("https://host/owner/name.git", "git@host:owner/name.git").
func splitRemoteURL(remote string) (string, string, error) {
	trimmed := strings.TrimSuffix(remote, ".git")
	if at := strings.Index(trimmed, "@"); at >= 0 && !strings.Contains(trimmed, "://") {
		if colon := strings.Index(trimmed, ":"); colon > at {
			trimmed = trimmed[colon+1:]
		}
	} else if scheme := strings.Index(trimmed, "://"); scheme >= 0 {
		rest := trimmed[scheme+3:]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			trimmed = rest[slash+1:]
		} else {
			trimmed = ""
		}
	}
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot derive owner/name from %q", remote)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

func (c *Config) normalizeRelease() {
	c.Release.AssetName = strings.TrimSpace(c.Release.AssetName)
	if c.Release.AssetName == "" {
		c.Release.AssetName = defaultAssetName
	}
	c.Release.CommitTemplate = strings.TrimSpace(c.Release.CommitTemplate)
	if c.Release.CommitTemplate == "" {
		c.Release.CommitTemplate = defaultCommitTemplate
	}
	lists := make([]string, 0, len(c.Release.ExcludeLists))
	for _, entry := range c.Release.ExcludeLists {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			lists = append(lists, trimmed)
		}
	}
	c.Release.ExcludeLists = lists
}

func (c *Config) normalizePublish() {
	c.Publish.APIBase = strings.TrimRight(strings.TrimSpace(c.Publish.APIBase), "/")
	if c.Publish.APIBase == "" {
		c.Publish.APIBase = defaultAPIBase
	}
	c.Publish.UploadBase = strings.TrimRight(strings.TrimSpace(c.Publish.UploadBase), "/")
	if c.Publish.UploadBase == "" {
		c.Publish.UploadBase = defaultUploadBase
	}
	c.Publish.TokenEnv = strings.TrimSpace(c.Publish.TokenEnv)
	if c.Publish.TokenEnv == "" {
		c.Publish.TokenEnv = defaultTokenEnv
	}
	if c.Publish.RequestTimeout <= 0 {
		c.Publish.RequestTimeout = defaultPublishTimeout
	}
}

func (c *Config) normalizeJournal() error {
	var err error
	if strings.TrimSpace(c.Journal.Dir) == "" {
		c.Journal.Dir = defaultJournalDir
	}
	if c.Journal.Dir, err = expandPath(c.Journal.Dir); err != nil {
		return fmt.Errorf("journal.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
