package sponge

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/oriumgames/nbt"
)

const (
	// RootName is the name of the root compound of a v2 schematic.
	RootName = "Schematic"
	// Version2 is the value of the Version field.
	Version2 = 2
)

// V2 is the NBT structure written for Sponge Schematic Version 2.
//
// Exactly one of PaletteMax and LegacyPaletteMax is set; the other is
// omitted. LegacyPaletteMax carries the misspelled key some older tools write.
type V2 struct {
	Version          int32            `nbt:"Version"`
	DataVersion      int32            `nbt:"DataVersion"`
	Width            int16            `nbt:"Width"`
	Height           int16            `nbt:"Height"`
	Length           int16            `nbt:"Length"`
	Metadata         map[string]any   `nbt:"Metadata"`
	PaletteMax       int32            `nbt:"PaletteMax,omitempty"`
	LegacyPaletteMax int32            `nbt:"PalettteMax,omitempty"`
	Palette          map[string]int32 `nbt:"Palette"`
	BlockData        []byte           `nbt:"BlockData,array"`
	BlockEntities    []map[string]any `nbt:"BlockEntities"`
}

// Options controls the optional parts of a v2 document.
type Options struct {
	DataVersion         int32
	Metadata            map[string]any
	LegacyPaletteMaxKey bool
}

// BuildV2 assembles the document for the blocks of src inside r.
// palette must map every index src can return.
func BuildV2(src BlockSource, r Region, palette map[string]int32, opts Options) V2 {
	metadata := opts.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	data := V2{
		Version:       Version2,
		DataVersion:   opts.DataVersion,
		Width:         int16(r.Width),
		Height:        int16(r.Height),
		Length:        int16(r.Length),
		Metadata:      metadata,
		Palette:       palette,
		BlockData:     Materialize(src, r),
		BlockEntities: []map[string]any{},
	}
	if opts.LegacyPaletteMaxKey {
		data.LegacyPaletteMax = int32(len(palette))
	} else {
		data.PaletteMax = int32(len(palette))
	}
	return data
}

// EncodeV2 writes data as gzip-compressed big-endian NBT with a root compound
// named RootName.
func EncodeV2(w io.Writer, data V2) error {
	var raw bytes.Buffer
	if err := nbt.NewEncoderWithEncoding(&raw, nbt.BigEndian).Encode(data); err != nil {
		return fmt.Errorf("encode nbt: %w", err)
	}
	body, err := renameRoot(raw.Bytes(), RootName)
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(w)
	if _, err := gz.Write(body); err != nil {
		gz.Close()
		return fmt.Errorf("write gzip: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

// tagCompound is the NBT type id of a compound tag.
const tagCompound = 0x0A

// renameRoot replaces the name of the root compound in a big-endian NBT
// stream. The nbt encoder always writes an empty root name.
func renameRoot(raw []byte, name string) ([]byte, error) {
	if len(raw) < 3 || raw[0] != tagCompound {
		return nil, fmt.Errorf("encode nbt: root is not a compound")
	}
	oldLen := int(binary.BigEndian.Uint16(raw[1:3]))
	if len(raw) < 3+oldLen {
		return nil, fmt.Errorf("encode nbt: truncated root name")
	}
	payload := raw[3+oldLen:]

	out := make([]byte, 0, 3+len(name)+len(payload))
	out = append(out, tagCompound)
	out = binary.BigEndian.AppendUint16(out, uint16(len(name)))
	out = append(out, name...)
	return append(out, payload...), nil
}
