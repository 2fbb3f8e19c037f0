package shader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Kind.String() + ":" + t.Text
	}
	return out
}

func TestTokens(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "declaration",
			src:  "vec3 a = vec3(1.0, .5, 2u);",
			want: []string{
				"Ident:vec3", "Ident:a", "Punct:=", "Ident:vec3", "Punct:(", "Number:1.0",
				"Punct:,", "Number:.5", "Punct:,", "Number:2u", "Punct:)", "Punct:;",
			},
		},
		{
			name: "comments are skipped",
			src:  "a // gl_FragCoord\n/* b\n c */ d",
			want: []string{"Ident:a", "Ident:d"},
		},
		{
			name: "strings are skipped",
			src:  `x "y \" z" w`,
			want: []string{"Ident:x", "Ident:w"},
		},
		{
			name: "directive only at line start",
			src:  "#pragma once\n  # define X 1\na # b",
			want: []string{
				"Directive:pragma", "Ident:once",
				"Directive:define", "Ident:X", "Number:1",
				"Ident:a", "Punct:#", "Ident:b",
			},
		},
		{
			name: "unterminated block comment",
			src:  "a /* never closed",
			want: []string{"Ident:a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := texts(Tokens(tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Tokens() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanner_Positions(t *testing.T) {
	src := "void f()\n{\n  x;\n}"
	toks := Tokens(src)
	require.Len(t, toks, 8)

	x := toks[5]
	assert.Equal(t, "x", x.Text)
	assert.Equal(t, hcl.Pos{Line: 3, Column: 3, Byte: 13}, x.Pos)
	assert.Equal(t, 14, x.End())

	s := NewScanner(src)
	for tok := s.Next(); tok.Kind != TokenEOF; tok = s.Next() {
	}
	eof := s.Next()
	assert.Equal(t, TokenEOF, eof.Kind)
	assert.Equal(t, len(src), eof.Pos.Byte)
}

func TestPositionAt(t *testing.T) {
	src := "ab\ncd\nef"
	assert.Equal(t, hcl.Pos{Line: 1, Column: 1, Byte: 0}, positionAt(src, 0))
	assert.Equal(t, hcl.Pos{Line: 2, Column: 2, Byte: 4}, positionAt(src, 4))
	assert.Equal(t, hcl.Pos{Line: 3, Column: 3, Byte: 8}, positionAt(src, 100))
}
