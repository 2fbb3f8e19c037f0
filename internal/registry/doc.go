// Package registry owns every shader source unit of an application instance.
//
// The Registry is built once from a config.Manifest: each source becomes a
// shader.Unit, shared headers get their enums rewritten, material library
// functions are catalogued, and REQUIRE directives are resolved into flattened
// dependency lists. After that the registry is read-only until Close.
//
// Compiled-in shader libraries contribute their sources through the Module
// interface, in the same way that the manifests are loaded from disk.
package registry
