package catalog

import (
	"encoding/json"

	"tools.zach/dev/colorschemes/internal/hexcolor"
)

// Info is the descriptor header Xcode writes into every Contents.json.
type Info struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

// xcodeInfo is the header used for every generated descriptor.
var xcodeInfo = Info{Version: 1, Author: "xcode"}

// GroupProperties marks a folder as a namespace in asset lookups.
type GroupProperties struct {
	ProvidesNamespace bool `json:"provides-namespace"`
}

// GroupContents is the descriptor of a namespace folder.
type GroupContents struct {
	Info       Info            `json:"info"`
	Properties GroupProperties `json:"properties"`
}

// Appearance conditions a color entry on a system appearance.
type Appearance struct {
	Appearance string `json:"appearance"`
	Value      string `json:"value"`
}

// Color is an sRGB color value.
type Color struct {
	ColorSpace string              `json:"color-space"`
	Components hexcolor.Components `json:"components"`
}

// ColorEntry is one variant of a color set.
type ColorEntry struct {
	Idiom       string       `json:"idiom"`
	Appearances []Appearance `json:"appearances,omitempty"`
	Color       Color        `json:"color"`
}

// ColorSetContents is the descriptor of a .colorset bundle.
type ColorSetContents struct {
	Info   Info         `json:"info"`
	Colors []ColorEntry `json:"colors"`
}

// darkAppearance tags the dark-mode entry of a color set.
var darkAppearance = []Appearance{{Appearance: "luminosity", Value: "dark"}}

// NewGroupContents returns a namespace-providing group descriptor.
func NewGroupContents() GroupContents {
	return GroupContents{Info: xcodeInfo, Properties: GroupProperties{ProvidesNamespace: true}}
}

// NewColorSetContents returns a descriptor with exactly two entries: the
// universal light color followed by the dark-appearance color.
func NewColorSetContents(light, dark hexcolor.Components) ColorSetContents {
	return ColorSetContents{
		Info: xcodeInfo,
		Colors: []ColorEntry{
			{Idiom: "universal", Color: Color{ColorSpace: "srgb", Components: light}},
			{Idiom: "universal", Appearances: darkAppearance, Color: Color{ColorSpace: "srgb", Components: dark}},
		},
	}
}

// encode renders a descriptor with two-space indentation, as Xcode does.
func encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
