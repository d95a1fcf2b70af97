package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/seqscope/internal/render/core"
)

// Palette JSON shape:
//
//	{
//	  "fallback": "#323232",
//	  "colors": {"A": "#00b400", "T": "#c80000", ...}
//	}

// LoadPalette reads a JSON palette file into a color map. A missing
// file yields the default nucleotide palette.
func LoadPalette(path string) (core.ColorMap, error) {
	if path == "" {
		return core.DefaultNucleotideColors(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultNucleotideColors(), nil
		}
		return core.ColorMap{}, fmt.Errorf("read palette %s: %w", path, err)
	}
	return ParsePalette(data)
}

// ParsePalette decodes palette JSON.
func ParsePalette(data []byte) (core.ColorMap, error) {
	if !gjson.ValidBytes(data) {
		return core.ColorMap{}, fmt.Errorf("palette: invalid JSON")
	}
	doc := gjson.ParseBytes(data)

	fallback := core.ColorNeutral
	if fb := doc.Get("fallback"); fb.Exists() {
		c, err := core.ColorFromHex(fb.String())
		if err != nil {
			return core.ColorMap{}, fmt.Errorf("palette fallback: %w", err)
		}
		fallback = c
	}

	colors := make(map[rune]core.Color)
	var parseErr error
	doc.Get("colors").ForEach(func(key, value gjson.Result) bool {
		runes := []rune(key.String())
		if len(runes) != 1 {
			parseErr = fmt.Errorf("palette: key %q is not a single character", key.String())
			return false
		}
		c, err := core.ColorFromHex(value.String())
		if err != nil {
			parseErr = fmt.Errorf("palette entry %q: %w", key.String(), err)
			return false
		}
		colors[runes[0]] = c
		return true
	})
	if parseErr != nil {
		return core.ColorMap{}, parseErr
	}
	return core.NewColorMap(colors, fallback), nil
}

// SavePalette writes a color map as palette JSON, with entries in a
// stable character order.
func SavePalette(path string, m core.ColorMap) error {
	doc := "{}"
	doc, _ = sjson.Set(doc, "fallback", m.Fallback().String())

	entries := m.Colors()
	keys := make([]rune, 0, len(entries))
	for r := range entries {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var err error
	for _, r := range keys {
		doc, err = sjson.Set(doc, "colors."+string(r), entries[r].String())
		if err != nil {
			return fmt.Errorf("encode palette entry %q: %w", r, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create palette dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write palette %s: %w", path, err)
	}
	return nil
}

// SetPaletteColor updates one character's color in the palette file in
// place, preserving the rest of the document.
func SetPaletteColor(path string, ch rune, hex string) error {
	if _, err := core.ColorFromHex(hex); err != nil {
		return fmt.Errorf("palette color for %q: %w", ch, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read palette %s: %w", path, err)
		}
		data = []byte("{}")
	}
	out, err := sjson.SetBytes(data, "colors."+string(ch), hex)
	if err != nil {
		return fmt.Errorf("set palette entry %q: %w", ch, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write palette %s: %w", path, err)
	}
	return nil
}
