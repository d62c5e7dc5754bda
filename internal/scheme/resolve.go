package scheme

import (
	"errors"
	"fmt"

	"tools.zach/dev/colorschemes/internal/hexcolor"
)

// ErrMissingHash is returned in strict mode for a hex value without its
// leading "#".
var ErrMissingHash = errors.New("hex color missing leading '#'")

// Pair is a fully populated light/dark color for one scheme role. It is the
// output of the merge step and the input to catalog generation.
type Pair struct {
	Scheme string
	Role   string
	Light  string
	Dark   string
	// DarkFallback is true when the role has no Dark entry and Light was reused.
	DarkFallback bool
}

// Pairs merges the scheme's appearance maps. Every Light role yields one
// pair, in Light order; a role missing from Dark reuses its Light value.
func (s Scheme) Pairs() []Pair {
	pairs := make([]Pair, 0, len(s.Light))
	for _, e := range s.Light {
		p := Pair{Scheme: s.Name, Role: e.Role, Light: e.Hex}
		if dark, ok := s.Dark.Lookup(e.Role); ok {
			p.Dark = dark
		} else {
			p.Dark = e.Hex
			p.DarkFallback = true
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// DarkOnly returns roles that appear in Dark but not in Light. They produce
// no color set.
func (s Scheme) DarkOnly() []string {
	var roles []string
	for _, e := range s.Dark {
		if _, ok := s.Light.Lookup(e.Role); !ok {
			roles = append(roles, e.Role)
		}
	}
	return roles
}

// ResolveOptions controls how [Resolve] treats hex values.
type ResolveOptions struct {
	// StrictHex rejects values without a leading "#". When false such
	// values are accepted if the remaining digits are valid hex.
	StrictHex bool
}

// Lenient identifies a hex value accepted without its leading "#".
type Lenient struct {
	Scheme     string
	Role       string
	Appearance string
	Hex        string
}

// Resolved is the merged, validated content of a table.
type Resolved struct {
	Pairs   []Pair
	Lenient []Lenient
}

// Resolve merges every scheme in t and checks each hex value against the
// missing-"#" policy in opts. Names are validated again since t may not come
// from [Parse]. Malformed digits are left for the converter to reject.
func Resolve(t *Table, opts ResolveOptions) (*Resolved, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	r := &Resolved{}
	for _, s := range t.Schemes {
		for _, p := range s.Pairs() {
			for _, v := range []struct{ appearance, hex string }{{Light, p.Light}, {Dark, p.Dark}} {
				if hexcolor.HasPrefix(v.hex) {
					continue
				}
				if p.DarkFallback && v.appearance == Dark {
					continue
				}
				if opts.StrictHex {
					return nil, fmt.Errorf("%s.%s.%s = %q: %w", p.Scheme, v.appearance, p.Role, v.hex, ErrMissingHash)
				}
				r.Lenient = append(r.Lenient, Lenient{Scheme: p.Scheme, Role: p.Role, Appearance: v.appearance, Hex: v.hex})
			}
			r.Pairs = append(r.Pairs, p)
		}
	}
	return r, nil
}
