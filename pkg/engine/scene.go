package engine

import "github.com/chazu/lignin-bsp/pkg/kernel"

// Part is a named solid defined by a script.
type Part struct {
	Name  string
	Solid kernel.Solid
}

// Scene is the ordered set of parts a script defined with defpart.
// Redefining a name replaces the earlier part in place.
type Scene struct {
	Parts []Part
	index map[string]int
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{index: make(map[string]int)}
}

// Add defines or redefines a part.
func (s *Scene) Add(name string, solid kernel.Solid) {
	if i, ok := s.index[name]; ok {
		s.Parts[i].Solid = solid
		return
	}
	s.index[name] = len(s.Parts)
	s.Parts = append(s.Parts, Part{Name: name, Solid: solid})
}

// Lookup returns the solid of the named part, or nil.
func (s *Scene) Lookup(name string) kernel.Solid {
	if i, ok := s.index[name]; ok {
		return s.Parts[i].Solid
	}
	return nil
}

// Len returns the number of parts.
func (s *Scene) Len() int {
	return len(s.Parts)
}
