package grapheme

import (
	"errors"
	"reflect"
	"testing"
)

func TestLookupDefaultEngine(t *testing.T) {
	for _, name := range []string{"", "uniseg", " UNISEG ", "icu4x"} {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) returned error: %v", name, err)
		}
		if p == nil {
			t.Fatalf("Lookup(%q) returned nil provider", name)
		}
	}
}

func TestLookupUnsupportedEngines(t *testing.T) {
	for _, name := range []string{"unicode", "Unicode", "bogus"} {
		_, err := Lookup(name)
		if !errors.Is(err, ErrUnsupportedEngine) {
			t.Fatalf("Lookup(%q) error = %v, want ErrUnsupportedEngine", name, err)
		}
		var engineErr *UnsupportedEngineError
		if !errors.As(err, &engineErr) || engineErr.Name != name {
			t.Fatalf("Lookup(%q) error = %#v", name, err)
		}
	}
}

func TestEnginesListsClosedSet(t *testing.T) {
	infos := Engines()
	if len(infos) != 3 {
		t.Fatalf("expected 3 engines, got %d", len(infos))
	}
	if infos[0].Name != EngineUniseg || !infos[0].Available || !infos[0].Default {
		t.Fatalf("unexpected first engine %+v", infos[0])
	}
	if infos[1].Name != EngineICU4X || !infos[1].Available || infos[1].Default {
		t.Fatalf("unexpected second engine %+v", infos[1])
	}
	if infos[2].Name != EngineUnicode || infos[2].Available {
		t.Fatalf("unexpected third engine %+v", infos[2])
	}
}

func TestICU4XMatchesUniseg(t *testing.T) {
	uniseg, err := Lookup("uniseg")
	if err != nil {
		t.Fatalf("Lookup(uniseg): %v", err)
	}
	icu, err := Lookup("icu4x")
	if err != nil {
		t.Fatalf("Lookup(icu4x): %v", err)
	}
	runes := []rune("g\u0308🇯🇵👨\u200D💻\r\n")
	if got, want := icu.Boundaries(runes), uniseg.Boundaries(runes); !reflect.DeepEqual(got, want) {
		t.Fatalf("icu4x boundaries %v, uniseg %v", got, want)
	}
}

func TestUnisegBoundaries(t *testing.T) {
	p, err := Lookup("uniseg")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"empty", "", nil},
		{"ascii", "hello", []int{1, 2, 3, 4, 5}},
		{"japanese", "あいう", []int{1, 2, 3}},
		{"emoji", "🍣🍺", []int{1, 2}},
		{"zwj sequences", "👨\u200D💻👩\u200D🍳", []int{3, 6}},
		{"combining dakuten", "\u304B\u3099", []int{2}},
		{"regional indicators", "🇯🇵🇺🇸", []int{2, 4}},
		{"crlf", "a\r\nb", []int{1, 3, 4}},
		{"skin tone", "👍🏽!", []int{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Boundaries([]rune(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Boundaries(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
