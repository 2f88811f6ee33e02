package sponge

import "github.com/oriumgames/mcschematic/internal/varint"

// BlockSource provides the palette index stored at an absolute position.
type BlockSource interface {
	PaletteIndex(x, y, z int32) (int32, bool)
}

// Materialize walks r in block data order (y, then z, then x) and returns the
// varint-encoded palette indices. Cells missing from src are written as air (0).
func Materialize(src BlockSource, r Region) []byte {
	buf := make([]byte, 0, r.Volume())
	for y := range r.Height {
		for z := range r.Length {
			for x := range r.Width {
				idx, ok := src.PaletteIndex(r.Min[0]+int32(x), r.Min[1]+int32(y), r.Min[2]+int32(z))
				if !ok {
					buf = append(buf, 0)
					continue
				}
				buf = varint.Append(buf, uint32(idx))
			}
		}
	}
	return buf
}
