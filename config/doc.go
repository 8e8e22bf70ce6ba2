// Package config holds the settings of the library command: data directory, table
// capacities, log level, output format and the optional PostgreSQL transaction mirror.
//
// Defaults come from Default, environment overrides from FromEnv. The command overlays
// its flags on top and calls Validate before anything is opened.
package config
