package mcschematic

import (
	"errors"
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/go-cmp/cmp"

	"github.com/oriumgames/mcschematic/internal/varint"
)

func TestNewIsEmpty(t *testing.T) {
	s := New()
	low, high, ok := s.Bounds()
	if ok || low != (Pos{}) || high != (Pos{}) {
		t.Fatalf("expected empty bounds at origin, got %v %v %v", low, high, ok)
	}
	if s.PaletteSize() != 1 || s.Len() != 0 {
		t.Fatalf("expected air-only palette and no blocks, got %d / %d", s.PaletteSize(), s.Len())
	}
	if idx, ok := s.PaletteIndexOf("minecraft:air"); !ok || idx != 0 {
		t.Fatalf("expected air at 0, got %d (ok=%v)", idx, ok)
	}
}

func TestFirstPlacementAnchorsBounds(t *testing.T) {
	s := New()
	s.SetBlock(Pos{5, 6, 7}, "minecraft:stone")
	low, high, ok := s.Bounds()
	if !ok || low != (Pos{5, 6, 7}) || high != (Pos{5, 6, 7}) {
		t.Fatalf("first placement must set both corners, got %v %v", low, high)
	}
	s.SetBlock(Pos{8, 3, 7}, "minecraft:stone")
	low, high, _ = s.Bounds()
	if low != (Pos{5, 3, 7}) || high != (Pos{8, 6, 7}) {
		t.Fatalf("unexpected bounds %v %v", low, high)
	}
	w, h, l, err := s.Dimensions()
	if err != nil || w != 4 || h != 4 || l != 1 {
		t.Fatalf("unexpected dimensions %d %d %d (%v)", w, h, l, err)
	}
}

func TestBoundsCoverEveryPlacement(t *testing.T) {
	s := New()
	placed := []Pos{{3, -9, 2}, {-4, 0, 0}, {1, 1, 1}, {0, 12, -30}, {3, -9, 2}}
	for _, p := range placed {
		s.SetBlock(p, "minecraft:stone")
	}
	low, high, _ := s.Bounds()
	if low != (Pos{-4, -9, -30}) || high != (Pos{3, 12, 2}) {
		t.Fatalf("unexpected bounds %v %v", low, high)
	}
	for _, p := range placed {
		if p.X < low.X || p.Y < low.Y || p.Z < low.Z || p.X > high.X || p.Y > high.Y || p.Z > high.Z {
			t.Fatalf("%v outside bounds", p)
		}
	}
}

func TestOverwriteKeepsBothPaletteEntries(t *testing.T) {
	s := New()
	s.SetBlock(Pos{}, "A")
	s.SetBlock(Pos{}, "B")
	if s.Len() != 1 {
		t.Fatalf("expected one placed block, got %d", s.Len())
	}
	if got, _ := s.Block(Pos{}); got != "B" {
		t.Fatalf("last write must win, got %q", got)
	}
	if diff := cmp.Diff(map[string]int32{"minecraft:air": 0, "A": 1, "B": 2}, s.Palette()); diff != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", diff)
	}
	data := blockData(t, s)
	if diff := cmp.Diff([]uint32{2}, data); diff != "" {
		t.Fatalf("block data mismatch (-want +got):\n%s", diff)
	}
}

func TestPaletteReuse(t *testing.T) {
	s := New()
	s.SetBlock(Pos{0, 0, 0}, "A")
	s.SetBlock(Pos{1, 0, 0}, "B")
	s.SetBlock(Pos{2, 0, 0}, "A")
	if s.PaletteSize() != 3 {
		t.Fatalf("expected palette size 3, got %d", s.PaletteSize())
	}
	if diff := cmp.Diff([]uint32{1, 2, 1}, blockData(t, s)); diff != "" {
		t.Fatalf("block data mismatch (-want +got):\n%s", diff)
	}
}

func TestNegativeCoordinates(t *testing.T) {
	s := New()
	s.SetBlock(Pos{-1, -1, -1}, "minecraft:stone")
	s.SetBlock(Pos{0, 0, 0}, "minecraft:dirt")
	low, high, _ := s.Bounds()
	if low != (Pos{-1, -1, -1}) || high != (Pos{0, 0, 0}) {
		t.Fatalf("unexpected bounds %v %v", low, high)
	}
	want := []uint32{1, 0, 0, 0, 0, 0, 0, 2}
	if diff := cmp.Diff(want, blockData(t, s)); diff != "" {
		t.Fatalf("block data mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalOrder(t *testing.T) {
	s := New()
	names := map[Pos]string{}
	for x := range int32(2) {
		for y := range int32(2) {
			for z := range int32(2) {
				p := Pos{x, y, z}
				names[p] = "minecraft:wool" + string(rune('a'+x+2*y+4*z))
				s.SetBlock(p, names[p])
			}
		}
	}
	data := blockData(t, s)
	i := 0
	for y := range int32(2) {
		for z := range int32(2) {
			for x := range int32(2) {
				want, _ := s.PaletteIndexOf(names[Pos{x, y, z}])
				if data[i] != uint32(want) {
					t.Fatalf("entry %d: got %d, want %d for %v", i, data[i], want, Pos{x, y, z})
				}
				i++
			}
		}
	}
}

func TestPaletteDensity(t *testing.T) {
	s := New()
	for i := range 300 {
		s.SetBlock(Pos{int32(i % 7), int32(i % 3), int32(i % 11)}, "minecraft:block_"+string(rune('a'+i%40)))
	}
	seen := make([]bool, s.PaletteSize())
	for _, idx := range s.Palette() {
		if idx < 0 || int(idx) >= len(seen) || seen[idx] {
			t.Fatalf("palette index %d out of range or repeated", idx)
		}
		seen[idx] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("palette index %d missing", i)
		}
	}
}

func TestFill(t *testing.T) {
	s := New()
	if err := s.Fill(Pos{2, 1, -1}, Pos{0, 0, 1}, "minecraft:dirt"); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if s.Len() != 18 {
		t.Fatalf("expected 18 blocks, got %d", s.Len())
	}
	low, high, _ := s.Bounds()
	if low != (Pos{0, 0, -1}) || high != (Pos{2, 1, 1}) {
		t.Fatalf("unexpected bounds %v %v", low, high)
	}
	for _, v := range blockData(t, s) {
		if v != 1 {
			t.Fatalf("expected every cell to be dirt, got %d", v)
		}
	}
}

func TestFillRejectsOversizedBox(t *testing.T) {
	s := New()
	s.SetBlock(Pos{1, 1, 1}, "minecraft:stone")
	cases := [][2]Pos{
		{{math.MinInt32, 0, 0}, {math.MaxInt32, 0, 0}},
		{{0, 0, 0}, {0, math.MaxInt16, 0}},
		{{0, 0, 5}, {0, 0, -math.MaxInt16}},
	}
	for _, c := range cases {
		if err := s.Fill(c[0], c[1], "minecraft:dirt"); !errors.Is(err, ErrDimensionOverflow) {
			t.Fatalf("Fill(%v, %v): expected ErrDimensionOverflow, got %v", c[0], c[1], err)
		}
	}
	low, high, _ := s.Bounds()
	if s.Len() != 1 || s.PaletteSize() != 2 || low != (Pos{1, 1, 1}) || high != (Pos{1, 1, 1}) {
		t.Fatalf("rejected fills must not touch the schematic: %d blocks, palette %d, bounds %v %v", s.Len(), s.PaletteSize(), low, high)
	}

	if err := s.Fill(Pos{0, 0, 0}, Pos{0, math.MaxInt16 - 1, 0}, "minecraft:dirt"); err != nil {
		t.Fatalf("span of 32767 must be accepted: %v", err)
	}
}

func TestDimensionOverflow(t *testing.T) {
	s := New()
	s.SetBlock(Pos{0, 0, 0}, "minecraft:stone")
	s.SetBlock(Pos{0, math.MaxInt16 - 1, 0}, "minecraft:stone")
	if _, h, _, err := s.Dimensions(); err != nil || h != math.MaxInt16 {
		t.Fatalf("span of 32767 must be accepted, got %d (%v)", h, err)
	}
	s.SetBlock(Pos{0, math.MaxInt16, 0}, "minecraft:stone")
	if _, _, _, err := s.Dimensions(); !errors.Is(err, ErrDimensionOverflow) {
		t.Fatalf("expected ErrDimensionOverflow, got %v", err)
	}

	s = New()
	s.SetBlock(Pos{math.MinInt32, 0, 0}, "minecraft:stone")
	s.SetBlock(Pos{math.MaxInt32, 0, 0}, "minecraft:stone")
	if _, _, _, err := s.Dimensions(); !errors.Is(err, ErrDimensionOverflow) {
		t.Fatalf("expected ErrDimensionOverflow, got %v", err)
	}
}

func TestPosCube(t *testing.T) {
	p := Pos{-3, 64, 12}
	if p.Cube() != (cube.Pos{-3, 64, 12}) {
		t.Fatalf("unexpected cube pos %v", p.Cube())
	}
}

// blockData returns the decoded palette indices of the materialized grid.
func blockData(t *testing.T, s *Schematic) []uint32 {
	t.Helper()
	doc, err := s.document(JE_1_20_1)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	w, h, l, _ := s.Dimensions()
	values, err := varint.DecodeArray(doc.BlockData, w*h*l)
	if err != nil {
		t.Fatalf("decode block data: %v", err)
	}
	return values
}
