package arbor

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the released version of arbor.
var Version = strings.TrimSpace(rawVersion)
