package sequence

import (
	"errors"
	"fmt"
	"sort"
)

// Kind classifies a module by its biological role.
type Kind string

// Recognized module kinds.
const (
	KindEnhancer Kind = "enhancer"
	KindPromoter Kind = "promoter"
	KindMotif    Kind = "motif"
)

// ErrUnknownKind indicates a module kind outside the recognized set.
var ErrUnknownKind = errors.New("unknown module kind")

// ParseKind validates a module kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEnhancer, KindPromoter, KindMotif:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ErrModuleNotFound indicates a lookup for a module the library does not hold.
var ErrModuleNotFound = errors.New("module not found")

// ErrDuplicateModule indicates two modules sharing one name.
var ErrDuplicateModule = errors.New("duplicate module")

// Library holds the loaded part modules keyed by name. A library is
// populated once at load time and read-only afterwards.
type Library struct {
	modules map[string]Module
}

// NewLibrary creates a Library from the given modules.
func NewLibrary(modules ...Module) (*Library, error) {
	lib := &Library{modules: make(map[string]Module, len(modules))}
	for _, m := range modules {
		if _, ok := lib.modules[m.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, m.Name())
		}
		lib.modules[m.Name()] = m
	}
	return lib, nil
}

// Get returns the module with the given name.
func (l *Library) Get(name string) (Module, error) {
	m, ok := l.modules[name]
	if !ok {
		return Module{}, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	return m, nil
}

// Has reports whether a module with the given name is held.
func (l *Library) Has(name string) bool {
	_, ok := l.modules[name]
	return ok
}

// ByKind returns the modules of the given kind, sorted by name.
func (l *Library) ByKind(kind Kind) []Module {
	var result []Module
	for _, m := range l.modules {
		if m.Kind() == kind {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Names returns all module names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.modules))
	for name := range l.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of modules held.
func (l *Library) Len() int { return len(l.modules) }
