// Package catalog writes color scheme tables into an Xcode asset catalog.
//
// Every scheme role becomes a dynamic color set under a namespace tree:
//
//	<root>.xcassets/
//	  ColorSchemes/Contents.json
//	  ColorSchemes/<Scheme>/Contents.json
//	  ColorSchemes/<Scheme>/<Scheme><Role>.colorset/Contents.json
//
// so the app resolves colors by name as "ColorSchemes/<Scheme>/<Scheme><Role>".
// All hex values are converted before anything is written; a bad value
// aborts the build with the catalog untouched. Descriptors are rewritten on
// every run and their bytes depend only on the table.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"tools.zach/dev/colorschemes/internal/atomicfile"
	"tools.zach/dev/colorschemes/internal/hexcolor"
	"tools.zach/dev/colorschemes/internal/logger"
	"tools.zach/dev/colorschemes/internal/paths"
	"tools.zach/dev/colorschemes/internal/scheme"
)

// ErrNotCatalog is returned when the destination is not an asset catalog root.
var ErrNotCatalog = errors.New("destination is not a .xcassets folder")

// Options configures [Build].
type Options struct {
	// Resolve controls the missing-"#" policy.
	Resolve scheme.ResolveOptions
	// Logger receives progress and warnings. Nil discards them.
	Logger *slog.Logger
}

// Result summarizes a build.
type Result struct {
	// Root is the catalog root written to.
	Root string
	// Schemes is the number of scheme groups written.
	Schemes int
	// ColorSets is the number of color set bundles written.
	ColorSets int
	// Fallbacks counts color sets whose dark color reused the light one.
	Fallbacks int
	// Changed counts descriptors whose bytes differ from the previous run.
	Changed int
	// Lenient lists hex values accepted without a leading "#".
	Lenient []scheme.Lenient
}

// colorSet is a merged pair with both appearances converted.
type colorSet struct {
	pair        scheme.Pair
	light, dark hexcolor.Components
}

// CheckRoot reports whether root can be used as a catalog root.
func CheckRoot(root string) error {
	if !paths.IsCatalog(root) {
		return fmt.Errorf("%w: %s", ErrNotCatalog, root)
	}
	return nil
}

// AssetName returns the name an app uses to look up a generated color.
func AssetName(schemeName, role string) string {
	return paths.GroupDir + "/" + schemeName + "/" + schemeName + role
}

// Names returns the asset name of every color set t would produce, in build order.
func Names(t *scheme.Table) []string {
	var names []string
	for _, s := range t.Schemes {
		for _, p := range s.Pairs() {
			names = append(names, AssetName(p.Scheme, p.Role))
		}
	}
	return names
}

// Build writes t into the catalog at root and returns a summary.
func Build(t *scheme.Table, root string, opts Options) (*Result, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	resolved, err := scheme.Resolve(t, opts.Resolve)
	if err != nil {
		return nil, err
	}
	sets, err := convert(resolved.Pairs)
	if err != nil {
		return nil, err
	}
	for _, l := range resolved.Lenient {
		log.Warn("hex color missing leading '#', accepted", "scheme", l.Scheme, "appearance", l.Appearance, "role", l.Role, "value", l.Hex)
	}

	res := &Result{Root: root, Lenient: resolved.Lenient}
	w := &writer{log: log, res: res}
	cat := paths.Catalog{Root: root}

	if err := w.group(cat.Group()); err != nil {
		return nil, err
	}

	next := 0
	for _, s := range t.Schemes {
		for _, role := range s.DarkOnly() {
			log.Warn("role only defined for Dark, skipped", "scheme", s.Name, "role", role)
		}
		if err := w.group(cat.Scheme(s.Name)); err != nil {
			return nil, err
		}
		res.Schemes++

		for ; next < len(sets) && sets[next].pair.Scheme == s.Name; next++ {
			cs := sets[next]
			if err := w.colorSet(cat.ColorSet(s.Name, cs.pair.Role), cs); err != nil {
				return nil, err
			}
			if cs.pair.DarkFallback {
				res.Fallbacks++
				log.Debug("dark color falls back to light", "scheme", s.Name, "role", cs.pair.Role)
			}
			res.ColorSets++
		}
		log.Debug("scheme written", "scheme", s.Name, "color_sets", len(s.Light))
	}

	return res, nil
}

// convert turns every pair into component sets.
func convert(pairs []scheme.Pair) ([]colorSet, error) {
	sets := make([]colorSet, 0, len(pairs))
	for _, p := range pairs {
		light, err := hexcolor.Convert(p.Light)
		if err != nil {
			return nil, fmt.Errorf("%s.%s.%s: %w", p.Scheme, scheme.Light, p.Role, err)
		}
		dark, err := hexcolor.Convert(p.Dark)
		if err != nil {
			return nil, fmt.Errorf("%s.%s.%s: %w", p.Scheme, scheme.Dark, p.Role, err)
		}
		sets = append(sets, colorSet{pair: p, light: light, dark: dark})
	}
	return sets, nil
}

// ///////////////////////////////////////////////
// Writer
// ///////////////////////////////////////////////

// writer creates directories and descriptors, tallying changes into res.
type writer struct {
	log *slog.Logger
	res *Result
}

func (w *writer) group(dir string) error {
	return w.write(dir, NewGroupContents())
}

func (w *writer) colorSet(dir string, cs colorSet) error {
	return w.write(dir, NewColorSetContents(cs.light, cs.dark))
}

// write ensures dir exists and replaces its Contents.json with v.
func (w *writer) write(dir string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", dir, err)
	}
	path := paths.Contents(dir)
	changed, err := atomicfile.Write(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if changed {
		w.res.Changed++
	}
	logger.Trace(w.log, "wrote descriptor", "path", path, "changed", changed)
	return nil
}
