package mcschematic

import (
	"fmt"
	"slices"
	_ "unsafe"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/oriumgames/crocon"
	"github.com/sandertv/gophertunnel/minecraft/protocol"

	"github.com/oriumgames/mcschematic/internal/blockstate"
	"github.com/oriumgames/mcschematic/internal/sponge"
)

// Structure exposes a Schematic as a world.Structure so it can be placed in a
// Dragonfly world using world.BuildStructure. Java block states are converted
// to Bedrock blocks once, when the Structure is created; states that cannot be
// converted are placed as air.
type Structure struct {
	schematic *Schematic
	region    sponge.Region
	version   string

	blocks  []world.Block
	liquids []world.Liquid

	unconverted []string
}

type converted struct {
	block  world.Block
	liquid world.Liquid
}

// NewStructure snapshots the palette of s for placement. dataVersion selects
// the Java release the block states are converted from. Blocks placed in s
// after this call are visible through At only if their state was already in
// the palette.
func NewStructure(s *Schematic, dataVersion int32) (*Structure, error) {
	r, err := s.region()
	if err != nil {
		return nil, err
	}
	version := VersionName(dataVersion)
	if version == "" {
		return nil, fmt.Errorf("data version %d predates Java Edition 1.9", dataVersion)
	}
	c, err := crocon.NewConverter()
	if err != nil {
		return nil, fmt.Errorf("create converter: %w", err)
	}

	st := &Structure{
		schematic: s,
		region:    r,
		version:   version,
		blocks:    make([]world.Block, s.palette.Size()),
		liquids:   make([]world.Liquid, s.palette.Size()),
	}
	for name, idx := range s.palette.All() {
		state := blockstate.Parse(name)
		conv, ok := st.convert(c, state)
		if !ok {
			st.unconverted = append(st.unconverted, state.String())
		}
		st.blocks[idx], st.liquids[idx] = conv.block, conv.liquid
	}
	return st, nil
}

// Dimensions implements world.Structure.
func (s *Structure) Dimensions() [3]int {
	return [3]int{s.region.Width, s.region.Height, s.region.Length}
}

// At implements world.Structure. Positions are relative to Origin.
func (s *Structure) At(x, y, z int, _ func(x, y, z int) world.Block) (world.Block, world.Liquid) {
	idx, ok := s.schematic.Index(Pos{
		X: s.region.Min[0] + int32(x),
		Y: s.region.Min[1] + int32(y),
		Z: s.region.Min[2] + int32(z),
	})
	if !ok || int(idx) >= len(s.blocks) {
		return block.Air{}, nil
	}
	return s.blocks[idx], s.liquids[idx]
}

// Origin returns the absolute position of the structure's lowest corner.
func (s *Structure) Origin() cube.Pos {
	return Pos{s.region.Min[0], s.region.Min[1], s.region.Min[2]}.Cube()
}

// Bounds returns the box covered by the structure in absolute coordinates.
func (s *Structure) Bounds() cube.BBox {
	o := s.Origin()
	return cube.Box(
		float64(o[0]), float64(o[1]), float64(o[2]),
		float64(o[0]+s.region.Width), float64(o[1]+s.region.Height), float64(o[2]+s.region.Length),
	)
}

// Version returns the Java release the structure converts from.
func (s *Structure) Version() string {
	return s.version
}

// Unconverted returns the block states, in canonical form, that had no Bedrock
// equivalent and are placed as air.
func (s *Structure) Unconverted() []string {
	return slices.Clone(s.unconverted)
}

// convert reports false when state is not air but could not be converted.
func (s *Structure) convert(c *crocon.Converter, state blockstate.State) (converted, bool) {
	air := converted{block: block.Air{}}
	if state.IsAir() {
		return air, true
	}

	b, err := c.ConvertBlock(crocon.BlockRequest{
		ConversionRequest: crocon.ConversionRequest{
			FromVersion: s.version,
			ToVersion:   protocol.CurrentVersion,
			FromEdition: crocon.JavaEdition,
			ToEdition:   crocon.BedrockEdition,
		},
		Block: crocon.Block{
			ID:     state.Name,
			States: state.Properties,
		},
	})
	if err != nil {
		return air, false
	}

	// Dragonfly rejects unknown properties.
	validProps := blockProperties[b.ID]
	for k := range b.States {
		if _, ok := validProps[k]; !ok {
			delete(b.States, k)
		}
	}

	ret, ok := world.BlockByName(b.ID, b.States)
	if !ok {
		return air, false
	}
	if nbter, ok := ret.(world.NBTer); ok {
		ret = nbter.DecodeNBT(map[string]any{}).(world.Block)
	}

	var liquid world.Liquid
	if waterlogged, ok := state.Properties["waterlogged"].(bool); ok && waterlogged {
		liquid = block.Water{Still: true, Depth: 8}
	}
	return converted{block: ret, liquid: liquid}, true
}

// blockProperties is linked from dragonfly to validate block properties.
//
//go:linkname blockProperties github.com/df-mc/dragonfly/server/world.blockProperties
var blockProperties map[string]map[string]any
