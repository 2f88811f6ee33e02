package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewReservesAir(t *testing.T) {
	p := New()
	if p.Size() != 1 {
		t.Fatalf("expected size 1, got %d", p.Size())
	}
	if idx, ok := p.Index(Air); !ok || idx != 0 {
		t.Fatalf("expected air at 0, got %d (ok=%v)", idx, ok)
	}
	if p.Intern(Air) != 0 {
		t.Fatalf("re-interning air must return 0")
	}
}

func TestInternIsStableAndDense(t *testing.T) {
	p := New()
	names := []string{"A", "B", "A", "minecraft:stone", "B", "minecraft:oak_stairs[facing=east,waterlogged=false]"}
	want := []int32{1, 2, 1, 3, 2, 4}
	for i, name := range names {
		if got := p.Intern(name); got != want[i] {
			t.Fatalf("Intern(%q) = %d, want %d", name, got, want[i])
		}
	}
	if p.Size() != 5 {
		t.Fatalf("expected size 5, got %d", p.Size())
	}

	seen := make([]bool, p.Size())
	for name, idx := range p.All() {
		if idx < 0 || int(idx) >= p.Size() || seen[idx] {
			t.Fatalf("index %d for %q is out of range or duplicated", idx, name)
		}
		seen[idx] = true
		if back, ok := p.Name(idx); !ok || back != name {
			t.Fatalf("Name(%d) = %q, want %q", idx, back, name)
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("index %d missing from palette", i)
		}
	}
}

func TestMapIsCopy(t *testing.T) {
	p := New()
	p.Intern("minecraft:stone")
	m := p.Map()
	if diff := cmp.Diff(map[string]int32{Air: 0, "minecraft:stone": 1}, m); diff != "" {
		t.Fatalf("Map mismatch (-want +got):\n%s", diff)
	}
	m["minecraft:dirt"] = 7
	if _, ok := p.Index("minecraft:dirt"); ok {
		t.Fatalf("mutating Map result leaked into palette")
	}
}

func TestNameOutOfRange(t *testing.T) {
	p := New()
	if _, ok := p.Name(-1); ok {
		t.Fatalf("expected miss for -1")
	}
	if _, ok := p.Name(1); ok {
		t.Fatalf("expected miss for 1")
	}
}
