// Package devicesizes holds a lookup table of named block-count presets for
// creating new images, the same CSV-driven-table idiom as disks.go's
// DiskGeometry table, scaled down to one number per entry (blocks) instead
// of a full physical geometry.
package devicesizes

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// Preset names a device size by slug: a round number of blocks suitable
// for format(), plus a human label for CLI help text.
type Preset struct {
	Name   string `csv:"name"`
	Slug   string `csv:"slug"`
	Blocks int    `csv:"blocks"`
	Notes  string `csv:"notes"`
}

//go:embed presets.csv
var rawCSV string

var presets map[string]Preset

func init() {
	presets = make(map[string]Preset)
	reader := strings.NewReader(rawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Preset) error {
		if _, exists := presets[row.Slug]; exists {
			return fmt.Errorf("duplicate preset slug %q", row.Slug)
		}
		presets[row.Slug] = row
		return nil
	})
	if err != nil {
		panic(fmt.Sprintf("devicesizes: malformed presets.csv: %s", err))
	}
}

// Get returns the preset registered under slug.
func Get(slug string) (Preset, error) {
	preset, ok := presets[slug]
	if !ok {
		return Preset{}, fmt.Errorf("no device size preset named %q", slug)
	}
	return preset, nil
}

// List returns every known preset, sorted by slug.
func List() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
