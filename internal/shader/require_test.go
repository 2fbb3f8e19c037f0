package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRequires(t *testing.T) {
	src := "#pragma REQUIRE(common_math_lib.glsl)\n" +
		"// #pragma REQUIRE(commented.glsl)\n" +
		"#pragma once\n" +
		"#  pragma BLENDER_REQUIRE( common_view_lib.glsl )\n" +
		"void main() {}\n"

	reqs, d := ScanRequires("a.glsl", src)
	require.Nil(t, d)
	require.Len(t, reqs, 2)

	assert.Equal(t, "common_math_lib.glsl", reqs[0].Name)
	assert.Equal(t, 1, reqs[0].Pos.Line)
	assert.Equal(t, 17, reqs[0].Pos.Column)

	assert.Equal(t, "common_view_lib.glsl", reqs[1].Name)
	assert.Equal(t, 4, reqs[1].Pos.Line)
	assert.Equal(t, strings.Index(src, "common_view_lib"), reqs[1].Pos.Byte)
}

func TestScanRequires_Malformed(t *testing.T) {
	src := "#pragma REQUIRE(first.glsl)\n#pragma REQUIRE(broken.glsl\nvoid f() {}\n#pragma REQUIRE(after.glsl)\n"

	reqs, d := ScanRequires("a.glsl", src)
	require.NotNil(t, d)
	assert.Equal(t, `Malformed REQUIRE: Missing ")" token`, d.Summary)
	assert.Equal(t, 2, d.Subject.Start.Line)
	assert.Equal(t, 17, d.Subject.Start.Column)

	require.Len(t, reqs, 1, "scanning stops at the malformed directive")
	assert.Equal(t, "first.glsl", reqs[0].Name)
}

func TestScanRequires_None(t *testing.T) {
	reqs, d := ScanRequires("a.glsl", "void main() {}\n")
	assert.Nil(t, d)
	assert.Empty(t, reqs)
}
