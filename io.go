package mcschematic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oriumgames/mcschematic/internal/sponge"
)

var (
	// ErrOpenSink is returned when the output file cannot be created.
	ErrOpenSink = errors.New("open output")
	// ErrDimensionOverflow is returned when an axis of the bounding box spans
	// more than 32767 blocks.
	ErrDimensionOverflow = sponge.ErrDimensionOverflow
	// ErrEncode is returned when NBT encoding, compression or writing fails.
	ErrEncode = errors.New("encode schematic")
)

// Write writes the schematic to w as a gzip-compressed Sponge Schematic v2
// tagged with dataVersion. Write does not modify the schematic and may be
// called any number of times.
func (s *Schematic) Write(w io.Writer, dataVersion int32) error {
	data, err := s.document(dataVersion)
	if err != nil {
		return err
	}
	if err := sponge.EncodeV2(w, data); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// Save writes the schematic to the file at path, creating or truncating it.
// On failure the file may be left partially written.
func (s *Schematic) Save(path string, dataVersion int32) (err error) {
	data, err := s.document(dataVersion)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenSink, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrEncode, path, cerr)
		}
	}()

	if err := sponge.EncodeV2(f, data); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func (s *Schematic) document(dataVersion int32) (sponge.V2, error) {
	r, err := s.region()
	if err != nil {
		return sponge.V2{}, err
	}
	return sponge.BuildV2(s, r, s.palette.Map(), sponge.Options{
		DataVersion:         dataVersion,
		Metadata:            s.Metadata(),
		LegacyPaletteMaxKey: s.legacyKey,
	}), nil
}
