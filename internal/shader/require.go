package shader

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/shaderdeps/internal/diag"
)

// requireDirectives are the pragma names that declare a dependency.
var requireDirectives = map[string]bool{
	"REQUIRE":         true,
	"BLENDER_REQUIRE": true,
}

// Require is one `#pragma REQUIRE(name)` directive.
type Require struct {
	Name string
	// Pos is the position of the first byte of Name.
	Pos hcl.Pos
}

// ScanRequires returns the dependency directives of src in source order.
// Scanning stops at the first malformed directive, which is returned as a
// diagnostic along with the directives found before it. Directives inside
// comments are ignored.
func ScanRequires(path, src string) ([]Require, *hcl.Diagnostic) {
	if !strings.Contains(src, "REQUIRE") {
		return nil, nil
	}

	var reqs []Require
	s := NewScanner(src)
	for tok := s.Next(); tok.Kind != TokenEOF; tok = s.Next() {
		if !tok.Is(TokenDirective, "pragma") {
			continue
		}
		kw := s.Next()
		if kw.Kind != TokenIdent || kw.Pos.Line != tok.Pos.Line || !requireDirectives[kw.Text] {
			continue
		}
		open := s.Next()
		if !open.Is(TokenPunct, "(") || open.Pos.Line != tok.Pos.Line {
			return reqs, diag.Errorf(path, kw.Pos, len(kw.Text), "Malformed %s: Missing \"(\" token", kw.Text)
		}

		start := open.End()
		lineEnd := strings.IndexByte(src[start:], '\n')
		if lineEnd < 0 {
			lineEnd = len(src) - start
		}
		end := strings.IndexByte(src[start:start+lineEnd], ')')
		if end < 0 {
			return reqs, diag.Errorf(path, positionAt(src, start), 1, "Malformed %s: Missing \")\" token", kw.Text)
		}
		raw := src[start : start+end]
		name := strings.TrimSpace(raw)
		offset := start + strings.Index(raw, name)
		reqs = append(reqs, Require{Name: name, Pos: positionAt(src, offset)})
	}
	return reqs, nil
}
