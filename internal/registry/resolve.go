package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/shaderdeps/internal/dag"
	"github.com/vk/shaderdeps/internal/diag"
	"github.com/vk/shaderdeps/internal/shader"
)

type resolveState uint8

const (
	statePending resolveState = iota
	stateVisiting
	stateResolved
	stateFailed
)

// ResolveError lists the units whose dependencies could not be resolved.
type ResolveError struct {
	Units []string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("dependency errors detected in %d unit(s): %s", len(e.Units), strings.Join(e.Units, ", "))
}

// resolve runs the three resolution phases: directive scanning, cycle
// breaking and flattening.
func (r *Registry) resolve(ctx context.Context) error {
	for _, u := range r.order {
		r.scanRequires(u)
	}
	r.breakCycles()
	for _, u := range r.order {
		r.flatten(u)
	}

	for _, u := range r.order {
		if r.state[u.Name] == stateFailed {
			r.failed = append(r.failed, u.Name)
		}
	}
	if len(r.failed) > 0 {
		r.logger.Error("Dependency errors detected.", "failed_units", r.failed)
		return &ResolveError{Units: r.failed}
	}
	r.logger.Debug("Dependency resolution complete.", "units", len(r.order))
	return nil
}

// scanRequires records the REQUIRE edges of u. The first malformed or
// unresolvable directive is reported and fails the unit.
func (r *Registry) scanRequires(u *shader.Unit) {
	reqs, d := shader.ScanRequires(u.Path, u.Text())
	for _, req := range reqs {
		if _, ok := r.units[req.Name]; !ok {
			r.reporter.Report(diag.Errorf(u.Path, req.Pos, len(req.Name), "Dependency not found"))
			r.state[u.Name] = stateFailed
			return
		}
		if req.Name == u.Name {
			r.reporter.Report(diag.Errorf(u.Path, req.Pos, len(req.Name), "Circular dependency: %s requires itself", u.Name))
			r.state[u.Name] = stateFailed
			return
		}
		r.requires[u.Name] = append(r.requires[u.Name], req)
		if err := r.graph.AddEdge(req.Name, u.Name); err != nil {
			// Both nodes exist and differ, so this cannot fail.
			panic(err)
		}
	}
	if d != nil {
		r.reporter.Report(d)
		r.state[u.Name] = stateFailed
	}
}

// breakCycles reports every REQUIRE cycle once, at the directive that closes
// it, fails the units on the cycle and removes the closing edge.
func (r *Registry) breakCycles() {
	for {
		err := r.graph.DetectCycles()
		if err == nil {
			return
		}
		var cycle *dag.CycleError
		if !errors.As(err, &cycle) {
			panic(err)
		}

		from, to := cycle.ClosingEdge()
		requirer := r.units[to]
		req := r.findRequire(to, from)
		r.reporter.Report(diag.Errorf(requirer.Path, req.Pos, len(req.Name), "Circular dependency: %s", requireChain(cycle.Path)))

		for _, name := range cycle.Path {
			r.state[name] = stateFailed
		}
		r.graph.RemoveEdge(from, to)
	}
}

func (r *Registry) findRequire(unit, target string) shader.Require {
	for _, req := range r.requires[unit] {
		if req.Name == target {
			return req
		}
	}
	panic(fmt.Sprintf("no REQUIRE(%s) directive recorded for %s", target, unit))
}

// requireChain renders a dependent-ordered cycle path in REQUIRE order,
// e.g. "a.glsl -> c.glsl -> b.glsl -> a.glsl".
func requireChain(path []string) string {
	out := make([]string, len(path))
	for i, name := range path {
		out[len(path)-1-i] = name
	}
	return strings.Join(out, " -> ")
}

// flatten computes the dependency list of u, after the lists of everything
// it requires. A resolved unit is never processed twice. It reports whether u
// resolved.
func (r *Registry) flatten(u *shader.Unit) bool {
	switch r.state[u.Name] {
	case stateResolved:
		return true
	case stateFailed:
		return false
	case stateVisiting:
		// Cycles were broken before flattening.
		panic(fmt.Sprintf("dependency cycle through %s reached during flattening", u.Name))
	}
	r.state[u.Name] = stateVisiting

	deps, err := r.graph.Dependencies(u.Name)
	if err != nil {
		panic(err)
	}
	for _, name := range deps {
		dep := r.units[name]
		if !r.flatten(dep) {
			r.logger.Debug("Dependency failed, failing dependent.", "unit", u.Name, "dependency", name)
			r.state[u.Name] = stateFailed
			return false
		}
		for _, d := range dep.Dependencies() {
			u.AppendDependency(d)
		}
		u.AppendDependency(dep)
	}

	r.state[u.Name] = stateResolved
	return true
}
