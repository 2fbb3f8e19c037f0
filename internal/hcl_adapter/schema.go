package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any
// manifest file.
type fileRoot struct {
	Sources     []*sourceBlock    `hcl:"source,block"`
	Directories []*directoryBlock `hcl:"directory,block"`
	Remain      hcl.Body          `hcl:",remain"`
}

// sourceBlock declares one named source:
//
//	source "gpu_shader_common_lib.glsl" {
//	  path = "${manifest_dir}/common/gpu_shader_common_lib.glsl"
//	}
//
// When text is set the source is inline and path only labels diagnostics.
type sourceBlock struct {
	Name string         `hcl:"name,label"`
	Path *string        `hcl:"path,optional"`
	Text hcl.Expression `hcl:"text,optional"`
}

// directoryBlock registers every matching file below a directory:
//
//	directory {
//	  path       = "shaders"
//	  extensions = [".glsl", ".hh"]
//	}
type directoryBlock struct {
	Path       string   `hcl:"path"`
	Extensions []string `hcl:"extensions,optional"`
}
