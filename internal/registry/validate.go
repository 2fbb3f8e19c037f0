package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/shaderdeps/internal/ctxlog"
)

// Validate checks the invariants of a resolved registry: every dependency
// list is free of duplicates and of the unit itself, each dependency's own
// dependencies come before it, and every catalogued function belongs to a
// registered material library. Failed units are skipped.
func (r *Registry) Validate(ctx context.Context) error {
	r.mustOpen()
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, u := range r.order {
		if r.state[u.Name] != stateResolved {
			continue
		}
		pos := make(map[string]int, len(u.Dependencies()))
		for i, d := range u.Dependencies() {
			if d == u {
				errs = append(errs, fmt.Sprintf("unit '%s': depends on itself", u.Name))
				continue
			}
			if _, dup := pos[d.Name]; dup {
				errs = append(errs, fmt.Sprintf("unit '%s': dependency '%s' listed twice", u.Name, d.Name))
				continue
			}
			pos[d.Name] = i
		}
		for _, d := range u.Dependencies() {
			for _, dd := range d.Dependencies() {
				p, ok := pos[dd.Name]
				if !ok {
					errs = append(errs, fmt.Sprintf("unit '%s': transitive dependency '%s' of '%s' is missing", u.Name, dd.Name, d.Name))
					continue
				}
				if p > pos[d.Name] {
					errs = append(errs, fmt.Sprintf("unit '%s': '%s' must come before '%s'", u.Name, dd.Name, d.Name))
				}
			}
		}
	}

	for _, fn := range r.catalog.All() {
		owner, ok := r.units[fn.Filename()]
		if !ok || owner != fn.Unit {
			errs = append(errs, fmt.Sprintf("function '%s': owning unit '%s' is not registered", fn.Name, fn.Filename()))
			continue
		}
		if !owner.IsMaterialLibrary(r.prefix) {
			errs = append(errs, fmt.Sprintf("function '%s': unit '%s' is not a material library", fn.Name, owner.Name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "units", len(r.order))
	return nil
}
