// Package config loads, normalizes, and validates shipwright configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and derives the hosting owner/name pair from
// the remote URL when not set explicitly. The Config type centralizes every
// knob the pipeline needs: watched file names, release asset naming, publish
// API endpoints, journal location, and notification settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a resolved repository identity, and clear validation
// errors.
package config
