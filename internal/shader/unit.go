// Package shader models GPU shader source units and the text scans run over
// them: builtin detection, enum preprocessing for shared headers, material
// library function parsing and dependency directives.
package shader

import (
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// DefaultMaterialPrefix is the filename prefix of material library units.
const DefaultMaterialPrefix = "gpu_shader_material_"

// Unit is one named shader source. Its dependency list is filled in by the
// resolver and is read-only afterwards.
type Unit struct {
	// Name is the logical filename used by REQUIRE directives.
	Name string
	// Path is where the text came from, used in diagnostics.
	Path string

	raw       string
	processed string
	builtins  BuiltinBits
	functions []*Function

	deps   []*Unit
	depSet map[*Unit]struct{}
}

// NewUnit creates a unit and scans its builtins.
func NewUnit(name, filePath, text string) *Unit {
	if filePath == "" {
		filePath = name
	}
	return &Unit{
		Name:      name,
		Path:      filePath,
		raw:       text,
		processed: text,
		builtins:  ScanBuiltins(text),
		depSet:    make(map[*Unit]struct{}),
	}
}

// IsHeader reports whether the unit is a C (.h) or C++ (.hh) header shared
// with host code.
func (u *Unit) IsHeader() bool {
	ext := path.Ext(u.Name)
	return ext == ".h" || ext == ".hh"
}

// IsMaterialLibrary reports whether the unit's functions belong in the
// material function catalog.
func (u *Unit) IsMaterialLibrary(prefix string) bool {
	if prefix == "" {
		prefix = DefaultMaterialPrefix
	}
	return strings.HasPrefix(u.Name, prefix) && strings.HasSuffix(u.Name, ".glsl")
}

// Preprocess rewrites the enums of a header unit. Diagnostics point into the
// raw text. Non-header units are left alone.
func (u *Unit) Preprocess() hcl.Diagnostics {
	if !u.IsHeader() {
		return nil
	}
	text, diags := PreprocessEnums(u.Path, u.raw, path.Ext(u.Name) == ".hh")
	u.processed = text
	return diags
}

// ParseFunctions scans the unit's text for library functions and attaches
// them to the unit. Diagnostics point into Text.
func (u *Unit) ParseFunctions() ([]*Function, hcl.Diagnostics) {
	fns, diags := ScanFunctions(u.Path, u.processed)
	for _, fn := range fns {
		fn.Unit = u
	}
	u.functions = fns
	return fns, diags
}

// Raw returns the text as registered.
func (u *Unit) Raw() string { return u.raw }

// Text returns the text after preprocessing. Repeated calls return the same
// string data.
func (u *Unit) Text() string { return u.processed }

// Preprocessed reports whether preprocessing changed the text.
func (u *Unit) Preprocessed() bool {
	return u.processed != u.raw
}

// Builtins returns the builtins referenced by this unit alone.
func (u *Unit) Builtins() BuiltinBits { return u.builtins }

// ClosureBuiltins returns the builtins referenced by this unit and every unit
// it depends on.
func (u *Unit) ClosureBuiltins() BuiltinBits {
	bits := u.builtins
	for _, d := range u.deps {
		bits |= d.builtins
	}
	return bits
}

// Functions returns the library functions parsed from this unit.
func (u *Unit) Functions() []*Function { return u.functions }

// Dependencies returns the flattened dependency list in assembly order.
func (u *Unit) Dependencies() []*Unit { return u.deps }

// DependsOn reports whether d is in the unit's flattened dependency list.
func (u *Unit) DependsOn(d *Unit) bool {
	_, ok := u.depSet[d]
	return ok
}

// AppendDependency adds d to the end of the dependency list unless it is
// already present or is the unit itself.
func (u *Unit) AppendDependency(d *Unit) bool {
	if d == u {
		return false
	}
	if _, ok := u.depSet[d]; ok {
		return false
	}
	u.depSet[d] = struct{}{}
	u.deps = append(u.deps, d)
	return true
}

// Fragments returns the texts to concatenate for a complete compilation
// unit: every dependency in order, then the unit itself.
func (u *Unit) Fragments() []string {
	out := make([]string, 0, len(u.deps)+1)
	for _, d := range u.deps {
		out = append(out, d.processed)
	}
	return append(out, u.processed)
}

// release drops the unit's text and links.
func (u *Unit) release() {
	u.raw, u.processed = "", ""
	u.functions = nil
	u.deps = nil
	u.depSet = nil
}

// Release drops every unit's text and links.
func Release(units []*Unit) {
	for _, u := range units {
		u.release()
	}
}
