// Package config provides configuration loading and validation for
// pipekit.
//
// It uses Viper to load configuration from config.yml and .env files
// found in standard locations, with environment variables overriding
// file values (e.g. SERVER_PORT, ENGINE_MAX_PARALLEL).
//
// # Usage
//
//	cfg, err := config.Load()
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
package config
