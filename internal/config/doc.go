// Package config loads, normalizes, and validates photofind configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit flag path, the standard
// ~/.config/photofind location, or a project-local photofind.toml. Obtain
// settings through this package so downstream code receives sanitized paths,
// canonical log formats, and clear validation errors.
package config
