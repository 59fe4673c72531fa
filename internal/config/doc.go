// Package config loads, normalizes, and validates docsim configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts) and
// reads TOML files. Both the CLI and the HTTP server obtain their settings
// through this package so they score documents with the same engine knobs.
package config
