// Package paths centralizes file and directory names used across the project.
// Asset catalog layout names are defined here as the single source of truth.
package paths

import (
	"path/filepath"
	"strings"
)

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Asset catalog names.
const (
	CatalogExt     = ".xcassets"
	ColorSetExt    = ".colorset"
	ContentsFile   = "Contents.json"
	GroupDir       = "ColorSchemes"
	DefaultCatalog = "Assets.xcassets"
)

// Tool files, relative to the working directory.
const (
	ConfigFile = "colorgen.toml"
	EnvFile    = ".env"
)

// IsCatalog reports whether path names an asset catalog root.
func IsCatalog(path string) bool {
	return strings.HasSuffix(path, CatalogExt)
}

// ColorSetName returns the bundle directory name for a scheme role.
// For example, ColorSetName("OceanBreeze", "Accent") returns
// "OceanBreezeAccent.colorset".
func ColorSetName(scheme, role string) string {
	return scheme + role + ColorSetExt
}

// ///////////////////////////////////////////////
// Catalog
// ///////////////////////////////////////////////

// Catalog provides path construction methods rooted at an asset catalog.
type Catalog struct {
	Root string
}

// Group returns the path of the top-level namespace group.
func (c Catalog) Group() string { return filepath.Join(c.Root, GroupDir) }

// Scheme returns the path of a scheme's namespace group.
func (c Catalog) Scheme(scheme string) string { return filepath.Join(c.Group(), scheme) }

// ColorSet returns the path of a scheme role's color set bundle.
func (c Catalog) ColorSet(scheme, role string) string {
	return filepath.Join(c.Scheme(scheme), ColorSetName(scheme, role))
}

// Contents returns the descriptor file path inside dir.
func Contents(dir string) string { return filepath.Join(dir, ContentsFile) }
