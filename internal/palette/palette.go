package palette

import (
	"iter"
	"maps"
)

// Air is the block state reserved at index 0 of every palette.
const Air = "minecraft:air"

// Palette manages an append-only mapping between block state strings and
// dense palette indices.
type Palette struct {
	names []string
	index map[string]int32
}

// New creates a palette with air at index 0.
func New() *Palette {
	p := &Palette{
		names: make([]string, 0, 8),
		index: make(map[string]int32, 8),
	}
	p.Intern(Air)
	return p
}

// Intern returns the index of name, adding it to the palette if it is not
// present yet. Indices are never reassigned.
func (p *Palette) Intern(name string) int32 {
	if idx, ok := p.index[name]; ok {
		return idx
	}
	idx := int32(len(p.names))
	p.names = append(p.names, name)
	p.index[name] = idx
	return idx
}

// Index returns the index of name.
func (p *Palette) Index(name string) (int32, bool) {
	idx, ok := p.index[name]
	return idx, ok
}

// Name returns the block state at idx.
func (p *Palette) Name(idx int32) (string, bool) {
	if idx < 0 || int(idx) >= len(p.names) {
		return "", false
	}
	return p.names[idx], true
}

// Size returns the number of entries in the palette, air included.
func (p *Palette) Size() int {
	return len(p.names)
}

// All yields every (name, index) pair. Callers must not rely on the order.
func (p *Palette) All() iter.Seq2[string, int32] {
	return func(yield func(string, int32) bool) {
		for i, name := range p.names {
			if !yield(name, int32(i)) {
				return
			}
		}
	}
}

// Map returns a copy of the name to index mapping.
func (p *Palette) Map() map[string]int32 {
	return maps.Clone(p.index)
}
