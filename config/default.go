package config

import _ "embed"

// DefaultConfigYAML is the embedded default configuration. External config
// files and environment variables override it field by field.
//
//go:embed default_config.yaml
var DefaultConfigYAML []byte
