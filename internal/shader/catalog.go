package shader

import (
	"fmt"
	"sort"
)

// Catalog indexes material library functions by name. The first definition
// of a name wins.
type Catalog struct {
	funcs map[string]*Function
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{funcs: make(map[string]*Function)}
}

// Add registers fn. When the name is already taken by a function of another
// unit, fn is not registered and the existing function is returned so the
// caller can report the redefinition. A repeat from the same unit is dropped
// and nil is returned.
func (c *Catalog) Add(fn *Function) (previous *Function) {
	existing, ok := c.funcs[fn.Name]
	if !ok {
		c.funcs[fn.Name] = fn
		return nil
	}
	if existing.Unit != fn.Unit {
		return existing
	}
	return nil
}

// Lookup returns the function called name, or nil.
func (c *Catalog) Lookup(name string) *Function {
	return c.funcs[name]
}

// Use returns the function called name and records its unit's filename in
// used. Asking for a function that is not catalogued is a programming error
// and panics.
func (c *Catalog) Use(used map[string]struct{}, name string) *Function {
	fn, ok := c.funcs[name]
	if !ok {
		panic(fmt.Sprintf("requested function %q not in the function library", name))
	}
	if used != nil {
		used[fn.Filename()] = struct{}{}
	}
	return fn
}

// All returns every catalogued function sorted by name.
func (c *Catalog) All() []*Function {
	out := make([]*Function, 0, len(c.funcs))
	for _, fn := range c.funcs {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of catalogued functions.
func (c *Catalog) Len() int { return len(c.funcs) }
