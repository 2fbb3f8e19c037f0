package shader

import (
	"strings"
)

// BuiltinBits is the set of GPU built-in variables a source references.
type BuiltinBits uint16

const (
	BuiltinNone BuiltinBits = 0

	BuiltinFragCoord BuiltinBits = 1 << (iota - 1)
	BuiltinFrontFacing
	BuiltinGlobalInvocationID
	BuiltinInstanceID
	BuiltinLocalInvocationID
	BuiltinLocalInvocationIndex
	BuiltinNumWorkGroups
	BuiltinPointCoord
	BuiltinPointSize
	BuiltinPrimitiveID
	BuiltinVertexID
	BuiltinWorkGroupID
	BuiltinWorkGroupSize
)

var builtinNames = []struct {
	bit  BuiltinBits
	name string
}{
	{BuiltinFragCoord, "FRAG_COORD"},
	{BuiltinFrontFacing, "FRONT_FACING"},
	{BuiltinGlobalInvocationID, "GLOBAL_INVOCATION_ID"},
	{BuiltinInstanceID, "INSTANCE_ID"},
	{BuiltinLocalInvocationID, "LOCAL_INVOCATION_ID"},
	{BuiltinLocalInvocationIndex, "LOCAL_INVOCATION_INDEX"},
	{BuiltinNumWorkGroups, "NUM_WORK_GROUP"},
	{BuiltinPointCoord, "POINT_COORD"},
	{BuiltinPointSize, "POINT_SIZE"},
	{BuiltinPrimitiveID, "PRIMITIVE_ID"},
	{BuiltinVertexID, "VERTEX_ID"},
	{BuiltinWorkGroupID, "WORK_GROUP_ID"},
	{BuiltinWorkGroupSize, "WORK_GROUP_SIZE"},
}

// builtinIdents maps GLSL identifiers to the flag they set. Both spellings of
// the work group count are accepted.
var builtinIdents = map[string]BuiltinBits{
	"gl_FragCoord":            BuiltinFragCoord,
	"gl_FrontFacing":          BuiltinFrontFacing,
	"gl_GlobalInvocationID":   BuiltinGlobalInvocationID,
	"gl_InstanceID":           BuiltinInstanceID,
	"gl_LocalInvocationID":    BuiltinLocalInvocationID,
	"gl_LocalInvocationIndex": BuiltinLocalInvocationIndex,
	"gl_NumWorkGroup":         BuiltinNumWorkGroups,
	"gl_NumWorkGroups":        BuiltinNumWorkGroups,
	"gl_PointCoord":           BuiltinPointCoord,
	"gl_PointSize":            BuiltinPointSize,
	"gl_PrimitiveID":          BuiltinPrimitiveID,
	"gl_VertexID":             BuiltinVertexID,
	"gl_WorkGroupID":          BuiltinWorkGroupID,
	"gl_WorkGroupSize":        BuiltinWorkGroupSize,
}

// Has reports whether every bit of other is set in b.
func (b BuiltinBits) Has(other BuiltinBits) bool { return b&other == other }

// String renders the set as pipe-separated flag names, or NONE when empty.
func (b BuiltinBits) String() string {
	if b == BuiltinNone {
		return "NONE"
	}
	var parts []string
	for _, n := range builtinNames {
		if b&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ScanBuiltins returns the built-ins referenced by identifiers in src.
// Mentions inside comments and string literals are ignored.
func ScanBuiltins(src string) BuiltinBits {
	if !strings.Contains(src, "gl_") {
		return BuiltinNone
	}
	bits := BuiltinNone
	s := NewScanner(src)
	for tok := s.Next(); tok.Kind != TokenEOF; tok = s.Next() {
		if tok.Kind == TokenIdent {
			bits |= builtinIdents[tok.Text]
		}
	}
	return bits
}
