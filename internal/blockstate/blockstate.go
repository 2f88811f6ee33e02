// Package blockstate splits Java block state strings such as
// "minecraft:oak_stairs[facing=east,half=bottom]" into a name and typed
// properties.
package blockstate

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// State is a block name with its typed properties. Properties is nil when
// the state has none.
type State struct {
	Name       string
	Properties map[string]any
}

// Parse splits a block state string into its name and properties. Blanks
// around names, keys and values are ignored, a missing closing bracket is
// tolerated and pairs without a key or "=" are dropped.
func Parse(s string) State {
	name, body, _ := strings.Cut(s, "[")
	st := State{Name: strings.TrimSpace(name)}
	body, _, _ = strings.Cut(body, "]")

	for pair := range strings.SplitSeq(body, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		if st.Properties == nil {
			st.Properties = make(map[string]any)
		}
		st.Properties[k] = propertyValue(strings.TrimSpace(v))
	}
	return st
}

// propertyValue types a raw property value as bool, int32 or string.
func propertyValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(v, 10, 32); err == nil {
		return int32(n)
	}
	return v
}

// IsAir reports whether the state names one of the air blocks.
func (s State) IsAir() bool {
	switch s.Name {
	case "minecraft:air", "air", "minecraft:cave_air", "minecraft:void_air":
		return true
	}
	return false
}

// String returns the canonical form with properties sorted by key.
func (s State) String() string {
	if len(s.Properties) == 0 {
		return s.Name
	}
	keys := slices.Sorted(maps.Keys(s.Properties))

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, s.Properties[k]))
	}
	return s.Name + "[" + strings.Join(parts, ",") + "]"
}
