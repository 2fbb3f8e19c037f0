package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanBuiltins(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want BuiltinBits
	}{
		{"none", "void main() { color = vec4(1.0); }", BuiltinNone},
		{"vertex and instance", "int v = gl_VertexID + gl_InstanceID;", BuiltinVertexID | BuiltinInstanceID},
		{"both work group spellings", "uvec3 a = gl_NumWorkGroup; uvec3 b = gl_NumWorkGroups;", BuiltinNumWorkGroups},
		{"comment mentions are ignored", "// uses gl_FragCoord\nfloat x = 1.0;", BuiltinNone},
		{"prefix is not a match", "float gl_FragCoordinate = 0.0;", BuiltinNone},
		{"frag coord and front facing", "if (gl_FrontFacing) { p = gl_FragCoord.xy; }", BuiltinFragCoord | BuiltinFrontFacing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScanBuiltins(tc.src))
		})
	}
}

func TestBuiltinBits_String(t *testing.T) {
	assert.Equal(t, "NONE", BuiltinNone.String())
	assert.Equal(t, "FRAG_COORD|VERTEX_ID", (BuiltinVertexID | BuiltinFragCoord).String())
	assert.Equal(t, "WORK_GROUP_SIZE", BuiltinWorkGroupSize.String())
}

func TestBuiltinBits_Distinct(t *testing.T) {
	var all BuiltinBits
	for _, n := range builtinNames {
		assert.Zero(t, all&n.bit, "bit for %s overlaps", n.name)
		all |= n.bit
	}
	assert.True(t, all.Has(BuiltinPointSize|BuiltinPrimitiveID))
}
