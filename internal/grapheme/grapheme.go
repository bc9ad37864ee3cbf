// Package grapheme resolves grapheme-boundary engines by identifier.
//
// An engine receives well-formed scalar values and reports where each extended
// grapheme cluster (UAX #29) ends. The set of identifiers is closed: every
// name is either backed by an implementation or reported as unsupported.
package grapheme

import (
	"errors"
	"fmt"
	"strings"
)

// Engine identifies a boundary implementation.
type Engine string

const (
	// EngineUniseg segments with github.com/rivo/uniseg.
	EngineUniseg Engine = "uniseg"
	// EngineICU4X is accepted for compatibility with older command lines and
	// segments with the same UAX #29 rules as EngineUniseg.
	EngineICU4X Engine = "icu4x"
	// EngineUnicode is reserved for a table-driven segmenter that is not
	// built in.
	EngineUnicode Engine = "unicode"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineUniseg

// Provider finds extended grapheme cluster boundaries.
type Provider interface {
	// Boundaries returns the exclusive end offset, in runes, of every cluster
	// in runes. Offsets are strictly increasing and the last one equals
	// len(runes). Empty input yields no offsets.
	Boundaries(runes []rune) []int
}

// ErrUnsupportedEngine is matched by every *UnsupportedEngineError.
var ErrUnsupportedEngine = errors.New("unsupported segmentation engine")

// UnsupportedEngineError names an engine that cannot be used.
type UnsupportedEngineError struct {
	Name string
}

func (e *UnsupportedEngineError) Error() string {
	return fmt.Sprintf("unsupported segmentation engine %q", e.Name)
}

func (e *UnsupportedEngineError) Is(target error) bool {
	return target == ErrUnsupportedEngine
}

// registry maps every known identifier to its constructor. A nil constructor
// marks an identifier that is recognized but not built in.
var registry = map[Engine]func() Provider{
	EngineUniseg:  func() Provider { return unisegProvider{} },
	EngineICU4X:   func() Provider { return unisegProvider{} },
	EngineUnicode: nil,
}

var engineOrder = []Engine{EngineUniseg, EngineICU4X, EngineUnicode}

// Lookup returns the provider registered under name. Names are matched
// case-insensitively; an empty name selects DefaultEngine.
func Lookup(name string) (Provider, error) {
	key := Engine(strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		key = DefaultEngine
	}
	ctor, ok := registry[key]
	if !ok || ctor == nil {
		return nil, &UnsupportedEngineError{Name: name}
	}
	return ctor(), nil
}

// Info describes one engine identifier.
type Info struct {
	Name      Engine
	Available bool
	Default   bool
}

// Engines lists every identifier in a stable order.
func Engines() []Info {
	infos := make([]Info, 0, len(engineOrder))
	for _, name := range engineOrder {
		infos = append(infos, Info{
			Name:      name,
			Available: registry[name] != nil,
			Default:   name == DefaultEngine,
		})
	}
	return infos
}
