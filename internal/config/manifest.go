package config

import (
	"fmt"
)

// Source is one named shader source.
type Source struct {
	// Name is the logical filename that REQUIRE directives refer to.
	Name string
	// Path is where Text was read from. It is only used for diagnostics.
	Path string
	Text string
}

// Manifest is the ordered set of sources the registry is built from.
type Manifest struct {
	sources []*Source
	byName  map[string]*Source
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{byName: make(map[string]*Source)}
}

// Add registers a source. Names must be unique.
func (m *Manifest) Add(name, path, text string) error {
	if name == "" {
		return fmt.Errorf("source name must not be empty (path %q)", path)
	}
	if prev, ok := m.byName[name]; ok {
		return fmt.Errorf("duplicate source %q: already registered from %s", name, prev.Path)
	}
	s := &Source{Name: name, Path: path, Text: text}
	m.sources = append(m.sources, s)
	m.byName[name] = s
	return nil
}

// Merge adds every source of other, in order.
func (m *Manifest) Merge(other *Manifest) error {
	for _, s := range other.sources {
		if err := m.Add(s.Name, s.Path, s.Text); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the source called name, or nil.
func (m *Manifest) Lookup(name string) *Source {
	return m.byName[name]
}

// Sources returns the sources in registration order.
func (m *Manifest) Sources() []*Source {
	return m.sources
}

// Len returns the number of sources.
func (m *Manifest) Len() int {
	return len(m.sources)
}
