// Package config loads, normalizes, and validates turndown configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TURNDOWN_DSN. The Config type centralizes every knob the CLI and the
// storage gateway need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
