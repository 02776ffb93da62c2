package chainalign

import _ "embed"

// Version is the release version of chainalign.
//
//go:embed VERSION
var Version string
