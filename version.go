package todomcp

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release version of the module.
var Version = strings.TrimSpace(version)
