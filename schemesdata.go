// Package colorschemes provides embedded assets for the colorgen tool.
//
// The root package exists solely to embed [schemes.default.toml] via
// [DefaultSchemesTOML]. The scheme package parses it when no table file
// is given on the command line.
package colorschemes

import _ "embed"

// DefaultSchemesTOML holds the raw bytes of schemes.default.toml, embedded at
// build time.
//
//go:embed schemes.default.toml
var DefaultSchemesTOML []byte
