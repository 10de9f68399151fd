package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/cpe/internal/colour"
)

// ColourEntry is one palette swatch in the JSON document.
type ColourEntry struct {
	Hex    string     `json:"hex"`
	RGB    colour.RGB `json:"rgb"`
	CMYK   [4]int     `json:"cmyk"`
	Weight float64    `json:"weight"`
}

// HarmonyEntry holds the harmonies of one palette colour, by kind.
type HarmonyEntry struct {
	Base string                          `json:"base"`
	Sets map[colour.HarmonyKind][]string `json:"sets"`
}

// Document is the JSON form of a Result. It is what the template renderer
// reads back.
type Document struct {
	Source    string                 `json:"source,omitempty"`
	Colors    []ColourEntry          `json:"colors"`
	Roles     map[colour.Role]string `json:"roles"`
	Harmonies []HarmonyEntry         `json:"harmonies"`
}

// NewDocument converts res into its JSON form.
func NewDocument(res *Result) *Document {
	doc := &Document{
		Source:    res.Source,
		Colors:    make([]ColourEntry, 0, res.Palette.Len()),
		Roles:     make(map[colour.Role]string, len(res.Roles)),
		Harmonies: make([]HarmonyEntry, 0, len(res.Harmonies)),
	}

	for _, s := range res.Palette.All() {
		c, m, y, k := s.Colour.CMYK().Percent()
		doc.Colors = append(doc.Colors, ColourEntry{
			Hex:    hex(s.Colour),
			RGB:    s.Colour,
			CMYK:   [4]int{c, m, y, k},
			Weight: s.Weight,
		})
	}
	for role, c := range res.Roles {
		doc.Roles[role] = hex(c)
	}
	for _, set := range res.Harmonies {
		doc.Harmonies = append(doc.Harmonies, NewHarmonyEntry(set))
	}
	return doc
}

// NewHarmonyEntry converts one harmony set into its JSON form.
func NewHarmonyEntry(set colour.HarmonySet) HarmonyEntry {
	entry := HarmonyEntry{Base: hex(set.Base), Sets: make(map[colour.HarmonyKind][]string, len(set.Colours))}
	for kind, colours := range set.Colours {
		hexes := make([]string, len(colours))
		for i, c := range colours {
			hexes[i] = hex(c)
		}
		entry.Sets[kind] = hexes
	}
	return entry
}

// WriteJSON writes res as an indented JSON document.
func WriteJSON(w io.Writer, res *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(res)); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	if len(doc.Colors) == 0 {
		return nil, fmt.Errorf("%w: report has no colors", colour.ErrEmptyInput)
	}
	return &doc, nil
}

// Colours returns the palette colours in document order.
func (d *Document) Colours() ([]colour.RGB, error) {
	out := make([]colour.RGB, len(d.Colors))
	for i, e := range d.Colors {
		c, err := colour.ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// ParsedRoles returns the role colours.
func (d *Document) ParsedRoles() (colour.Roles, error) {
	roles := make(colour.Roles, len(d.Roles))
	for role, h := range d.Roles {
		c, err := colour.ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w", role, err)
		}
		roles[role] = c
	}
	return roles, nil
}
