// Tests for the scheme package covering [Parse] ordering and errors, the
// embedded [Default] table, [Table.Filter], the dark-falls-back-to-light
// merge in [Scheme.Pairs], and the missing-"#" policy in [Resolve].

package scheme

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const twoSchemes = `
[Zeta.Light]
Primary = "#FF0000"
Accent = "#00FF00"
Border = "#0000FF"

[Zeta.Dark]
Primary = "#110000"
Border = "#000011"
Accent = "#001100"

[Alpha.Light]
Text = "#FFFFFF"
Background = "#000000"
Card = "#808080"

[Alpha.Dark]
Text = "#000000"
Background = "#FFFFFF"
`

// ///////////////////////////////////////////////
// Parse
// ///////////////////////////////////////////////

func TestParsePreservesDocumentOrder(t *testing.T) {
	tbl, err := Parse([]byte(twoSchemes))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, want := tbl.Names(), []string{"Zeta", "Alpha"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	zeta, ok := tbl.Lookup("Zeta")
	if !ok {
		t.Fatal("Lookup(Zeta) not found")
	}
	if got, want := zeta.Light.Roles(), []string{"Primary", "Accent", "Border"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Zeta Light roles = %v, want %v", got, want)
	}
	if got, want := zeta.Dark.Roles(), []string{"Primary", "Border", "Accent"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Zeta Dark roles = %v, want %v", got, want)
	}
	if hex, _ := zeta.Dark.Lookup("Accent"); hex != "#001100" {
		t.Errorf("Zeta Dark Accent = %q, want #001100", hex)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown appearance", "[Ocean.Dusk]\nAccent = \"#000000\"\n", ErrUnknownAppearance},
		{"malformed toml", "[[[ not toml", nil},
		{"value instead of table", "Ocean = \"#000000\"\n", nil},
		{"non-string color", "[Ocean.Light]\nAccent = 12\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"scheme with parent segments", "[\"../../escape\".Light]\nText = \"#000000\"\n"},
		{"scheme with separator", "[\"a/b\".Light]\nText = \"#000000\"\n"},
		{"scheme with backslash", "[\"a\\\\b\".Light]\nText = \"#000000\"\n"},
		{"role with separator", "[Ocean.Light]\n\"../Text\" = \"#000000\"\n"},
		{"dark role with parent segments", "[Ocean.Light]\nText = \"#000000\"\n[Ocean.Dark]\n\"..\" = \"#000000\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, ErrInvalidName) {
				t.Fatalf("Parse error = %v, want ErrInvalidName", err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"OceanBreeze", "Soft Blue", "Card.v2", "Accent-2"} {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range []string{"", "  ", "..", "a/b", `a\b`, "x..y"} {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	tbl, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if len(tbl.Schemes) != 0 {
		t.Errorf("len(Schemes) = %d, want 0", len(tbl.Schemes))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemes.toml")
	if err := os.WriteFile(path, []byte(twoSchemes), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Schemes) != 2 {
		t.Errorf("len(Schemes) = %d, want 2", len(tbl.Schemes))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) expected error, got nil")
	}
}

// ///////////////////////////////////////////////
// Default Table
// ///////////////////////////////////////////////

func TestDefaultTable(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	want := []string{"OceanBreeze", "SunsetCoral", "ForestNight", "SoftPastel", "SoftBlue"}
	if got := tbl.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	forest, _ := tbl.Lookup("ForestNight")
	if hex, _ := forest.Dark.Lookup("Border"); hex != "1F4822" {
		t.Errorf("ForestNight Dark Border = %q, want 1F4822", hex)
	}

	soft, _ := tbl.Lookup("SoftBlue")
	if got := len(soft.Light); got != 5 {
		t.Errorf("SoftBlue has %d light roles, want 5", got)
	}

	total := 0
	for _, s := range tbl.Schemes {
		total += len(s.Pairs())
	}
	if total != 37 {
		t.Errorf("default table yields %d pairs, want 37", total)
	}
}

// ///////////////////////////////////////////////
// Filter
// ///////////////////////////////////////////////

func TestFilter(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  error
	}{
		{"no patterns keeps all", nil, tbl.Names(), nil},
		{"exact name", []string{"SoftBlue"}, []string{"SoftBlue"}, nil},
		{"prefix glob keeps table order", []string{"Soft*"}, []string{"SoftPastel", "SoftBlue"}, nil},
		{"multiple patterns", []string{"SoftBlue", "Ocean*"}, []string{"OceanBreeze", "SoftBlue"}, nil},
		{"alternation", []string{"{Sunset,Forest}*"}, []string{"SunsetCoral", "ForestNight"}, nil},
		{"no match", []string{"Nope*"}, nil, ErrNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Filter(tt.patterns)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			if !reflect.DeepEqual(got.Names(), tt.want) {
				t.Errorf("Names() = %v, want %v", got.Names(), tt.want)
			}
		})
	}
}

func TestFilterInvalidPattern(t *testing.T) {
	tbl, _ := Default()
	if _, err := tbl.Filter([]string{"[Ocean"}); err == nil {
		t.Error("expected error for invalid pattern, got nil")
	}
}

// ///////////////////////////////////////////////
// Merge
// ///////////////////////////////////////////////

func TestPairsDarkFallsBackToLight(t *testing.T) {
	tbl, err := Parse([]byte(twoSchemes))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	alpha, _ := tbl.Lookup("Alpha")

	want := []Pair{
		{Scheme: "Alpha", Role: "Text", Light: "#FFFFFF", Dark: "#000000"},
		{Scheme: "Alpha", Role: "Background", Light: "#000000", Dark: "#FFFFFF"},
		{Scheme: "Alpha", Role: "Card", Light: "#808080", Dark: "#808080", DarkFallback: true},
	}
	if got := alpha.Pairs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %+v, want %+v", got, want)
	}
}

func TestDarkOnly(t *testing.T) {
	s := Scheme{
		Name:  "X",
		Light: Palette{{Role: "Text", Hex: "#000000"}},
		Dark:  Palette{{Role: "Text", Hex: "#FFFFFF"}, {Role: "Glow", Hex: "#FF00FF"}},
	}
	if got := s.DarkOnly(); !reflect.DeepEqual(got, []string{"Glow"}) {
		t.Errorf("DarkOnly() = %v, want [Glow]", got)
	}
	if got := len(s.Pairs()); got != 1 {
		t.Errorf("len(Pairs()) = %d, want 1 (dark-only roles are ignored)", got)
	}
}

// ///////////////////////////////////////////////
// Resolve
// ///////////////////////////////////////////////

func TestResolveLenientAcceptsMissingHash(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	r, err := Resolve(tbl, ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(r.Pairs) != 37 {
		t.Errorf("len(Pairs) = %d, want 37", len(r.Pairs))
	}
	want := []Lenient{{Scheme: "ForestNight", Role: "Border", Appearance: Dark, Hex: "1F4822"}}
	if !reflect.DeepEqual(r.Lenient, want) {
		t.Errorf("Lenient = %+v, want %+v", r.Lenient, want)
	}
}

func TestResolveStrictRejectsMissingHash(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	_, err = Resolve(tbl, ResolveOptions{StrictHex: true})
	if !errors.Is(err, ErrMissingHash) {
		t.Fatalf("Resolve strict error = %v, want ErrMissingHash", err)
	}
}

func TestResolveRejectsUnsafeNames(t *testing.T) {
	tbl := &Table{Schemes: []Scheme{{
		Name:  "../../escape",
		Light: Palette{{Role: "Text", Hex: "#000000"}},
	}}}

	if _, err := Resolve(tbl, ResolveOptions{}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Resolve error = %v, want ErrInvalidName", err)
	}
}

func TestResolveFallbackReportedOnce(t *testing.T) {
	tbl := &Table{Schemes: []Scheme{{
		Name:  "Bare",
		Light: Palette{{Role: "Text", Hex: "ABCDEF"}},
	}}}

	r, err := Resolve(tbl, ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(r.Lenient) != 1 || r.Lenient[0].Appearance != Light {
		t.Errorf("Lenient = %+v, want one Light entry", r.Lenient)
	}
	if !r.Pairs[0].DarkFallback || r.Pairs[0].Dark != "ABCDEF" {
		t.Errorf("pair = %+v, want dark fallback to light", r.Pairs[0])
	}
}
