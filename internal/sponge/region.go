package sponge

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionOverflow is returned when a region is too large for the 16-bit
// dimension fields of the format.
var ErrDimensionOverflow = errors.New("dimension exceeds 16-bit range")

// Region is the box written to a schematic. Width spans X, Height spans Y and
// Length spans Z, starting at Min.
type Region struct {
	Min                   [3]int32
	Width, Height, Length int
}

// NewRegion returns the region spanning low to high inclusive.
func NewRegion(low, high [3]int32) (Region, error) {
	var size [3]int
	for axis, name := range [3]string{"width", "height", "length"} {
		span := int64(high[axis]) - int64(low[axis]) + 1
		if span <= 0 {
			return Region{}, fmt.Errorf("invalid %s %d: low %d above high %d", name, span, low[axis], high[axis])
		}
		if span > math.MaxInt16 {
			return Region{}, fmt.Errorf("%w: %s %d > %d", ErrDimensionOverflow, name, span, math.MaxInt16)
		}
		size[axis] = int(span)
	}
	return Region{Min: low, Width: size[0], Height: size[1], Length: size[2]}, nil
}

// Volume returns the number of cells in the region.
func (r Region) Volume() int {
	return r.Width * r.Height * r.Length
}

// Index returns the position of the relative cell (x, y, z) in the block data.
func (r Region) Index(x, y, z int) int {
	return x + z*r.Width + y*r.Width*r.Length
}
