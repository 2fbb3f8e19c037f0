// Package config defines the format-agnostic source manifest, the list of
// named shader sources the registry is built from, along with the Loader
// interface for reading a manifest from various origins.
//
// Concrete loaders, such as for HCL manifests or source directories, are
// provided in separate packages.
package config
