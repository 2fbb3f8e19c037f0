package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/ctxlog"
	"github.com/vk/shaderdeps/internal/dag"
	"github.com/vk/shaderdeps/internal/diag"
	"github.com/vk/shaderdeps/internal/shader"
)

// Options tunes how a Registry is built.
type Options struct {
	// MaterialPrefix selects the units whose functions are catalogued.
	// Empty means shader.DefaultMaterialPrefix.
	MaterialPrefix string
	// Reporter receives every diagnostic. When nil, diagnostics are only
	// kept in memory.
	Reporter *diag.Reporter
}

// Registry holds all shader sources of a single application instance.
type Registry struct {
	logger   *slog.Logger
	reporter *diag.Reporter
	prefix   string

	units   map[string]*shader.Unit
	order   []*shader.Unit
	catalog *shader.Catalog
	graph   *dag.Graph

	// requires holds the REQUIRE directives of each unit that named an
	// existing unit, in source order.
	requires map[string][]shader.Require
	state    map[string]resolveState
	failed   []string

	closed bool
}

// New builds a registry from a manifest and resolves every dependency. The
// registry is returned even when resolution fails; the error is then a
// *ResolveError naming the failed units, and callers are expected to treat
// it as fatal.
func New(ctx context.Context, manifest *config.Manifest, opts Options) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NewReporter(io.Discard, diag.FormatCaret, logger)
	}
	prefix := opts.MaterialPrefix
	if prefix == "" {
		prefix = shader.DefaultMaterialPrefix
	}

	r := &Registry{
		logger:   logger,
		reporter: reporter,
		prefix:   prefix,
		units:    make(map[string]*shader.Unit, manifest.Len()),
		catalog:  shader.NewCatalog(),
		graph:    dag.New(),
		requires: make(map[string][]shader.Require),
		state:    make(map[string]resolveState, manifest.Len()),
	}

	logger.Debug("Registry loading sources.", "count", manifest.Len())
	for _, src := range manifest.Sources() {
		r.addUnit(src)
	}
	logger.Debug("Sources loaded.", "units", len(r.order), "functions", r.catalog.Len())

	if err := r.resolve(ctx); err != nil {
		return r, err
	}
	logger.Info("Shader dependencies resolved.", "units", len(r.order), "functions", r.catalog.Len(), "diagnostics", len(reporter.Diagnostics()))
	return r, nil
}

func (r *Registry) addUnit(src *config.Source) {
	if _, exists := r.units[src.Name]; exists {
		panic(fmt.Sprintf("shader source with name '%s' already registered", src.Name))
	}
	u := shader.NewUnit(src.Name, src.Path, src.Text)

	r.reporter.SetSource(u.Path, u.Raw())
	r.reporter.Report(u.Preprocess()...)
	if u.Preprocessed() {
		r.reporter.SetSource(u.Path, u.Text())
		r.logger.Debug("Header enums preprocessed.", "unit", u.Name)
	}

	if u.IsMaterialLibrary(r.prefix) {
		fns, diags := u.ParseFunctions()
		r.reporter.Report(diags...)
		for _, fn := range fns {
			prev := r.catalog.Add(fn)
			if prev == nil {
				continue
			}
			r.reporter.Report(
				diag.Errorf(u.Path, fn.Pos, len(fn.Name), "Function redefinition or overload in two different files ..."),
				diag.Warningf(prev.Unit.Path, prev.Pos, len(prev.Name), "... previous definition was here"),
			)
		}
	}

	r.units[u.Name] = u
	r.order = append(r.order, u)
	r.graph.AddNode(u.Name)
}

func (r *Registry) mustOpen() {
	if r.closed {
		panic("shader registry used after Close")
	}
}

// Has reports whether a unit called name is registered.
func (r *Registry) Has(name string) bool {
	r.mustOpen()
	_, ok := r.units[name]
	return ok
}

// Lookup returns the unit called name. Asking for an unknown unit panics.
func (r *Registry) Lookup(name string) *shader.Unit {
	r.mustOpen()
	u, ok := r.units[name]
	if !ok {
		panic(fmt.Sprintf("shader source %q is not registered", name))
	}
	return u
}

// Builtins returns the builtins used by the unit and everything it depends
// on. An empty name has no builtins. An unknown name is logged and panics.
func (r *Registry) Builtins(name string) shader.BuiltinBits {
	r.mustOpen()
	if name == "" {
		return shader.BuiltinNone
	}
	u, ok := r.units[name]
	if !ok {
		r.logger.Error("Could not find shader source in the list of registered sources.", "name", name)
		panic(fmt.Sprintf("shader source %q is not registered", name))
	}
	return u.ClosureBuiltins()
}

// ResolvedSource returns the texts to concatenate for the named unit:
// its dependencies in order, then the unit itself.
func (r *Registry) ResolvedSource(name string) []string {
	return r.Lookup(name).Fragments()
}

// Source returns the preprocessed text of the named unit.
func (r *Registry) Source(name string) string {
	return r.Lookup(name).Text()
}

// FilenameForSource returns the name of the unit whose text is text. The
// match is by identity of the string data, so only strings handed out by
// Source or ResolvedSource are found. Unknown text gives "".
func (r *Registry) FilenameForSource(text string) string {
	r.mustOpen()
	if text == "" {
		return ""
	}
	ptr := unsafe.StringData(text)
	for _, u := range r.order {
		t := u.Text()
		if len(t) == len(text) && unsafe.StringData(t) == ptr {
			return u.Name
		}
	}
	return ""
}

// Function returns the catalogued function called name, or nil.
func (r *Registry) Function(name string) *shader.Function {
	r.mustOpen()
	return r.catalog.Lookup(name)
}

// UseFunction returns the catalogued function called name and records its
// unit in used. An unknown function panics.
func (r *Registry) UseFunction(used map[string]struct{}, name string) *shader.Function {
	r.mustOpen()
	return r.catalog.Use(used, name)
}

// Functions returns every catalogued function sorted by name.
func (r *Registry) Functions() []*shader.Function {
	r.mustOpen()
	return r.catalog.All()
}

// Dependents returns the units that directly REQUIRE name, in registration
// order of the directives.
func (r *Registry) Dependents(name string) []string {
	r.mustOpen()
	out, err := r.graph.Dependents(name)
	if err != nil {
		panic(fmt.Sprintf("shader source %q is not registered", name))
	}
	return out
}

// Graph returns the REQUIRE graph. Edges point from a dependency to the
// units requiring it.
func (r *Registry) Graph() *dag.Graph {
	r.mustOpen()
	return r.graph
}

// Units returns every unit in manifest order.
func (r *Registry) Units() []*shader.Unit {
	r.mustOpen()
	return r.order
}

// Failed returns the units whose dependencies could not be resolved, in
// manifest order.
func (r *Registry) Failed() []string {
	r.mustOpen()
	return r.failed
}

// Diagnostics returns every diagnostic reported while building the registry.
func (r *Registry) Diagnostics() hcl.Diagnostics {
	return r.reporter.Diagnostics()
}

// Close releases every unit and function. The registry must not be used
// afterwards; a new one has to be built from scratch.
func (r *Registry) Close() {
	if r.closed {
		return
	}
	shader.Release(r.order)
	r.units = nil
	r.order = nil
	r.catalog = nil
	r.graph = nil
	r.requires = nil
	r.state = nil
	r.closed = true
	r.logger.Debug("Shader registry closed.")
}
