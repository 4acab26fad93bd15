package configs

import (
	_ "embed"
)

// ConfigFile is the default configuration, written out by --init and used
// when no config file is given.
//
//go:embed config.yaml
var ConfigFile string
