package mcschematic

import (
	"fmt"
	"maps"

	"github.com/df-mc/dragonfly/server/block/cube"

	"github.com/oriumgames/mcschematic/internal/palette"
	"github.com/oriumgames/mcschematic/internal/sponge"
)

// Pos is a block position. X runs along the schematic width, Y along its
// height and Z along its length.
type Pos struct {
	X, Y, Z int32
}

// Cube converts the position to a Dragonfly block position.
func (p Pos) Cube() cube.Pos {
	return cube.Pos{int(p.X), int(p.Y), int(p.Z)}
}

func (p Pos) array() [3]int32 {
	return [3]int32{p.X, p.Y, p.Z}
}

// Schematic is a sparse voxel grid that grows its bounding box as blocks are
// placed. It is not safe for concurrent use.
type Schematic struct {
	palette *palette.Palette
	blocks  map[Pos]int32

	low, high Pos
	empty     bool

	metadata  map[string]any
	legacyKey bool
}

// New creates an empty schematic whose palette only contains air.
func New() *Schematic {
	return &Schematic{
		palette:  palette.New(),
		blocks:   make(map[Pos]int32),
		empty:    true,
		metadata: make(map[string]any),
	}
}

// SetBlock places block at p, replacing whatever was placed there before.
// block is a full block state string such as "minecraft:stone" or
// "minecraft:oak_stairs[facing=east]"; it is not validated.
func (s *Schematic) SetBlock(p Pos, block string) {
	s.blocks[p] = s.palette.Intern(block)

	if s.empty {
		s.low, s.high = p, p
		s.empty = false
		return
	}
	s.low = Pos{min(s.low.X, p.X), min(s.low.Y, p.Y), min(s.low.Z, p.Z)}
	s.high = Pos{max(s.high.X, p.X), max(s.high.Y, p.Y), max(s.high.Z, p.Z)}
}

// Fill places block at every position of the box spanned by a and b,
// both corners included. A box that could never be saved is rejected with
// ErrDimensionOverflow before anything is placed.
func (s *Schematic) Fill(a, b Pos, block string) error {
	lo := Pos{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
	hi := Pos{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
	if _, err := sponge.NewRegion(lo.array(), hi.array()); err != nil {
		return fmt.Errorf("fill %v to %v: %w", a, b, err)
	}
	for y := int64(lo.Y); y <= int64(hi.Y); y++ {
		for z := int64(lo.Z); z <= int64(hi.Z); z++ {
			for x := int64(lo.X); x <= int64(hi.X); x++ {
				s.SetBlock(Pos{int32(x), int32(y), int32(z)}, block)
			}
		}
	}
	return nil
}

// Block returns the block state placed at p.
func (s *Schematic) Block(p Pos) (string, bool) {
	idx, ok := s.blocks[p]
	if !ok {
		return "", false
	}
	return s.palette.Name(idx)
}

// Index returns the palette index placed at p.
func (s *Schematic) Index(p Pos) (int32, bool) {
	idx, ok := s.blocks[p]
	return idx, ok
}

// PaletteIndex implements sponge.BlockSource.
func (s *Schematic) PaletteIndex(x, y, z int32) (int32, bool) {
	return s.Index(Pos{x, y, z})
}

// Len returns the number of positions that have a block placed.
func (s *Schematic) Len() int {
	return len(s.blocks)
}

// Bounds returns the lowest and highest corner of every position ever passed
// to SetBlock. ok is false while the schematic is empty, in which case both
// corners are the origin.
func (s *Schematic) Bounds() (low, high Pos, ok bool) {
	return s.low, s.high, !s.empty
}

// Dimensions returns the width, height and length of the bounding box.
// It fails with ErrDimensionOverflow if an axis does not fit the format.
func (s *Schematic) Dimensions() (width, height, length int, err error) {
	r, err := s.region()
	if err != nil {
		return 0, 0, 0, err
	}
	return r.Width, r.Height, r.Length, nil
}

func (s *Schematic) region() (sponge.Region, error) {
	return sponge.NewRegion(s.low.array(), s.high.array())
}

// PaletteIndexOf returns the palette index of block.
func (s *Schematic) PaletteIndexOf(block string) (int32, bool) {
	return s.palette.Index(block)
}

// PaletteSize returns the number of distinct block states, air included.
func (s *Schematic) PaletteSize() int {
	return s.palette.Size()
}

// Palette returns a copy of the block state to index mapping.
func (s *Schematic) Palette() map[string]int32 {
	return s.palette.Map()
}

// Metadata returns a copy of the producer metadata written with the schematic.
func (s *Schematic) Metadata() map[string]any {
	return maps.Clone(s.metadata)
}

// SetMetadata sets a metadata key-value pair. Values must be encodable as NBT.
func (s *Schematic) SetMetadata(key string, value any) {
	s.metadata[key] = value
}

// SetLegacyPaletteMaxKey makes Save write the palette size under the
// misspelled "PalettteMax" key instead of "PaletteMax", for tools that only
// look for the former.
func (s *Schematic) SetLegacyPaletteMaxKey(legacy bool) {
	s.legacyKey = legacy
}
