package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRepo(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRepo() error {
	if c.Repo.Owner == "" || c.Repo.Name == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shipwright/config.toml"
		}
		return fmt.Errorf("repo.owner and repo.name are required. Set them or repo.remote_url in %s (create with 'shipwright config new')", defaultPath)
	}
	if c.Repo.MetadataFile == c.Repo.FeedFile {
		return errors.New("repo.metadata_file and repo.feed_file must differ")
	}
	return nil
}

func (c *Config) validatePublish() error {
	if c.Publish.RequestTimeout <= 0 {
		return errors.New("publish.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
