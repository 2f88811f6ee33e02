// Package build loads YAML build files describing the blocks of a schematic.
//
//	version: "1.20.1"
//	metadata:
//	  Name: gate
//	blocks:
//	  - pos: [0, 0, 0]
//	    state: minecraft:stone
//	fills:
//	  - from: [0, 1, 0]
//	    to: [4, 1, 4]
//	    state: minecraft:oak_planks
package build

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oriumgames/mcschematic"
)

// File is a parsed build file.
type File struct {
	Version             string         `yaml:"version"`
	LegacyPaletteMaxKey bool           `yaml:"legacy_palette_max_key"`
	Metadata            map[string]any `yaml:"metadata"`
	Blocks              []Block        `yaml:"blocks"`
	Fills               []Fill         `yaml:"fills"`
}

// Block places a single block state.
type Block struct {
	Pos   [3]int32 `yaml:"pos"`
	State string   `yaml:"state"`
}

// Fill places a block state in every cell of a box, both corners included.
type Fill struct {
	From  [3]int32 `yaml:"from"`
	To    [3]int32 `yaml:"to"`
	State string   `yaml:"state"`
}

// Cells returns the number of cells covered by the fill.
func (f Fill) Cells() int64 {
	n := int64(1)
	for i := range 3 {
		n *= span(f.From[i], f.To[i])
	}
	return n
}

// Load reads and validates the build file at path.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(raw)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a build file.
func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("decode yaml: %w", err)
	}
	for i, b := range f.Blocks {
		if b.State == "" {
			return File{}, fmt.Errorf("blocks[%d]: missing state", i)
		}
	}
	for i, fill := range f.Fills {
		if fill.State == "" {
			return File{}, fmt.Errorf("fills[%d]: missing state", i)
		}
	}
	md, err := normalizeMap(f.Metadata)
	if err != nil {
		return File{}, fmt.Errorf("metadata: %w", err)
	}
	f.Metadata = md
	return f, nil
}

// DataVersion resolves the file's version, falling back to def when unset.
func (f File) DataVersion(def int32) (int32, error) {
	if f.Version == "" {
		return def, nil
	}
	return mcschematic.ParseVersion(f.Version)
}

// Cells returns the number of SetBlock calls Apply performs.
func (f File) Cells() int64 {
	n := int64(len(f.Blocks))
	for _, fill := range f.Fills {
		n += fill.Cells()
	}
	return n
}

// Apply places the file's blocks, then its fills, in file order. progress, if
// not nil, is called with the number of cells placed since the last call.
// A fill too large to save stops Apply with mcschematic.ErrDimensionOverflow.
func (f File) Apply(s *mcschematic.Schematic, progress func(n int)) error {
	if progress == nil {
		progress = func(int) {}
	}
	for k, v := range f.Metadata {
		s.SetMetadata(k, v)
	}
	s.SetLegacyPaletteMaxKey(f.LegacyPaletteMaxKey)

	for _, b := range f.Blocks {
		s.SetBlock(mcschematic.Pos{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]}, b.State)
	}
	progress(len(f.Blocks))

	for i, fill := range f.Fills {
		// Layers alone would pass Fill's check, so the height is checked here.
		if h := span(fill.From[1], fill.To[1]); h > math.MaxInt16 {
			return fmt.Errorf("fills[%d]: %w: height %d", i, mcschematic.ErrDimensionOverflow, h)
		}
		// One layer at a time so large fills report progress.
		lo, hi := min(fill.From[1], fill.To[1]), max(fill.From[1], fill.To[1])
		for y := lo; ; y++ {
			a := mcschematic.Pos{X: fill.From[0], Y: y, Z: fill.From[2]}
			b := mcschematic.Pos{X: fill.To[0], Y: y, Z: fill.To[2]}
			if err := s.Fill(a, b, fill.State); err != nil {
				return fmt.Errorf("fills[%d]: %w", i, err)
			}
			// Fill accepted the layer, so both spans fit in 16 bits.
			progress(int(span(fill.From[0], fill.To[0]) * span(fill.From[2], fill.To[2])))
			if y == hi {
				break
			}
		}
	}
	return nil
}

// span returns the number of cells between a and b inclusive.
func span(a, b int32) int64 {
	d := int64(b) - int64(a)
	if d < 0 {
		d = -d
	}
	return d + 1
}

var errUnsupported = errors.New("unsupported value")

// normalizeMap converts YAML values to types the NBT encoder accepts.
func normalizeMap(m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		nv, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func normalize(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return uint8(1), nil
		}
		return uint8(0), nil
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), nil
		}
		return int64(v), nil
	case float64:
		return v, nil
	case map[string]any:
		return normalizeMap(v)
	case []any:
		return normalizeList(v)
	default:
		return nil, fmt.Errorf("%w %T", errUnsupported, v)
	}
}

// normalizeList converts a YAML sequence of strings or integers. NBT lists
// are homogeneous, so mixed sequences are rejected.
func normalizeList(list []any) (any, error) {
	strs := make([]string, 0, len(list))
	ints := make([]int32, 0, len(list))
	for _, e := range list {
		switch e := e.(type) {
		case string:
			strs = append(strs, e)
		case int:
			if e < math.MinInt32 || e > math.MaxInt32 {
				return nil, fmt.Errorf("%w: list integer %d out of range", errUnsupported, e)
			}
			ints = append(ints, int32(e))
		default:
			return nil, fmt.Errorf("%w %T in list", errUnsupported, e)
		}
	}
	if len(strs) > 0 && len(ints) > 0 {
		return nil, fmt.Errorf("%w: mixed list", errUnsupported)
	}
	if len(ints) > 0 {
		return ints, nil
	}
	return strs, nil
}
