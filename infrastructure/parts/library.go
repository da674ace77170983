// Package parts loads the module library, filler background, and custom
// recipe documents from their on-disk formats. All sequences are
// normalized to uppercase and validated against the ACGT alphabet at
// this boundary; the domain layer receives clean inputs.
package parts

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/synthome/stitch/domain/sequence"
)

type moduleDoc struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Sequence string `yaml:"sequence"`
}

type libraryDoc struct {
	Modules []moduleDoc `yaml:"modules"`
}

// LoadLibrary reads a YAML parts library from path.
func LoadLibrary(path string) (*sequence.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parts library: %w", err)
	}
	return ParseLibrary(data)
}

// ParseLibrary parses a YAML parts library document. Each module needs
// a name, a recognized kind, and a non-empty ACGT sequence.
func ParseLibrary(data []byte) (*sequence.Library, error) {
	var doc libraryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse parts library: %w", err)
	}
	if len(doc.Modules) == 0 {
		return nil, fmt.Errorf("parts library holds no modules")
	}
	modules := make([]sequence.Module, 0, len(doc.Modules))
	for _, m := range doc.Modules {
		if m.Name == "" {
			return nil, fmt.Errorf("parts library module without a name")
		}
		kind, err := sequence.ParseKind(m.Kind)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		mod, err := sequence.NewModule(m.Name, kind, normalizeSequence(m.Sequence))
		if err != nil {
			return nil, err
		}
		modules = append(modules, mod)
	}
	return sequence.NewLibrary(modules...)
}

// LoadFiller reads the plain-text filler background from path.
func LoadFiller(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read filler: %w", err)
	}
	return ParseFiller(data)
}

// ParseFiller normalizes and validates a plain-text filler sequence.
// The text may be wrapped over multiple lines.
func ParseFiller(data []byte) (string, error) {
	filler := normalizeSequence(string(data))
	if filler == "" {
		return "", fmt.Errorf("filler sequence is empty")
	}
	if err := sequence.Validate(filler); err != nil {
		return "", fmt.Errorf("filler: %w", err)
	}
	return filler, nil
}

// normalizeSequence strips whitespace and uppercases.
func normalizeSequence(s string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
