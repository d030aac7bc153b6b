// Package config loads, normalizes, and validates backline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// BACKLINE_BAND_NAME. The Config type centralizes every knob the CLI, the
// record store, and the rider exporter need so that data, log, icon, and
// output directories are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
