// Package scheme holds the color scheme table: named palettes with Light and
// Dark appearance maps keyed by semantic role.
//
// Tables are loaded from TOML documents shaped as
//
//	[OceanBreeze.Light]
//	Accent = "#5AC8FA"
//
//	[OceanBreeze.Dark]
//	Accent = "#64D2FF"
//
// Scheme and role order follow the document, so generated output is stable.
// A table is an immutable value passed to its consumers; there is no
// package-level table.
package scheme

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	rootpkg "tools.zach/dev/colorschemes"
)

// Appearance names accepted as second-level keys.
const (
	Light = "Light"
	Dark  = "Dark"
)

var (
	// ErrUnknownAppearance is returned when a scheme has a key other than Light or Dark.
	ErrUnknownAppearance = errors.New("unknown appearance")
	// ErrNoMatch is returned when a filter selects no schemes.
	ErrNoMatch = errors.New("no schemes match")
	// ErrInvalidName is returned for scheme or role names that cannot be
	// used as a single path element inside the catalog.
	ErrInvalidName = errors.New("invalid name")
)

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Entry is one role's hex color within an appearance map.
type Entry struct {
	Role string
	Hex  string
}

// Palette is an ordered appearance map from role name to hex color.
type Palette []Entry

// Lookup returns the hex color for role.
func (p Palette) Lookup(role string) (string, bool) {
	for _, e := range p {
		if e.Role == role {
			return e.Hex, true
		}
	}
	return "", false
}

// Roles returns the role names in order.
func (p Palette) Roles() []string {
	roles := make([]string, len(p))
	for i, e := range p {
		roles[i] = e.Role
	}
	return roles
}

// Scheme is a named palette with light and dark variants.
type Scheme struct {
	Name  string
	Light Palette
	Dark  Palette
}

// Table is an ordered list of schemes.
type Table struct {
	Schemes []Scheme
}

// Lookup returns the scheme called name.
func (t *Table) Lookup(name string) (Scheme, bool) {
	for _, s := range t.Schemes {
		if s.Name == name {
			return s, true
		}
	}
	return Scheme{}, false
}

// Names returns the scheme names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Schemes))
	for i, s := range t.Schemes {
		names[i] = s.Name
	}
	return names
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Default returns the built-in table embedded in the binary.
func Default() (*Table, error) {
	t, err := Parse(rootpkg.DefaultSchemesTOML)
	if err != nil {
		return nil, fmt.Errorf("parse embedded schemes: %w", err)
	}
	return t, nil
}

// Load reads and parses a scheme table file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schemes file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a TOML scheme table, preserving document order for schemes
// and roles.
func Parse(data []byte) (*Table, error) {
	var raw map[string]map[string]map[string]string
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	t := &Table{}
	index := map[string]int{}
	for _, key := range md.Keys() {
		name := key[0]
		i, seen := index[name]
		if !seen {
			i = len(t.Schemes)
			index[name] = i
			t.Schemes = append(t.Schemes, Scheme{Name: name})
		}
		if len(key) < 2 {
			continue
		}
		appearance := key[1]
		if appearance != Light && appearance != Dark {
			return nil, fmt.Errorf("scheme %q: %w %q (want %s or %s)", name, ErrUnknownAppearance, appearance, Light, Dark)
		}
		if len(key) != 3 {
			continue
		}
		e := Entry{Role: key[2], Hex: raw[name][appearance][key[2]]}
		if appearance == Light {
			t.Schemes[i].Light = append(t.Schemes[i].Light, e)
		} else {
			t.Schemes[i].Dark = append(t.Schemes[i].Dark, e)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// ValidateName checks that name is usable as a directory or file name
// component: non-empty, no path separators, no "..".
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w %q: contains a path separator", ErrInvalidName, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w %q: contains \"..\"", ErrInvalidName, name)
	}
	return nil
}

// Validate checks every scheme and role name in t with [ValidateName].
func (t *Table) Validate() error {
	for _, s := range t.Schemes {
		if err := ValidateName(s.Name); err != nil {
			return fmt.Errorf("scheme: %w", err)
		}
		for _, p := range []Palette{s.Light, s.Dark} {
			for _, e := range p {
				if err := ValidateName(e.Role); err != nil {
					return fmt.Errorf("scheme %q role: %w", s.Name, err)
				}
			}
		}
	}
	return nil
}

// ///////////////////////////////////////////////
// Filtering
// ///////////////////////////////////////////////

// Filter returns a table holding only the schemes whose names match one of
// the doublestar patterns. An empty pattern list returns t unchanged.
func (t *Table) Filter(patterns []string) (*Table, error) {
	if len(patterns) == 0 {
		return t, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid scheme pattern %q", p)
		}
	}

	out := &Table{}
	for _, s := range t.Schemes {
		if slices.ContainsFunc(patterns, func(p string) bool {
			ok, _ := doublestar.Match(p, s.Name)
			return ok
		}) {
			out.Schemes = append(out.Schemes, s)
		}
	}
	if len(out.Schemes) == 0 {
		return nil, fmt.Errorf("%w %v", ErrNoMatch, patterns)
	}
	return out, nil
}
