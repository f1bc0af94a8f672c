// Package config loads the seqkit configuration.
//
// Values are layered: a YAML file (explicit --config path, ./.seqkit.yml,
// ./config/config.yml, ./config.yml or <user config dir>/seqkit/config.yml),
// then a .env file, then SEQKIT_ environment variables with
// underscore-separated paths (e.g. SEQKIT_WORDS_TOP=20).
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile(path))
package config
