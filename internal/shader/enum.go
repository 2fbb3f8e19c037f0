package shader

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/shaderdeps/internal/diag"
)

// enumTypes maps the accepted C/C++ underlying types to their GLSL spelling.
var enumTypes = map[string]string{
	"uint32_t": "uint",
	"int32_t":  "int",
}

// enumDecl is a rewritable enum found in a header.
type enumDecl struct {
	start, valuesStart, valuesEnd, semicolon int
	name, glslType                           string
	trailingComma                            int // offset of the trailing comma, -1 if none
}

// PreprocessEnums rewrites the enum declarations of a C or C++ header into
// GLSL constants:
//
//	enum eFoo : uint32_t { A = 0, B = 1, };
//
// becomes
//
//	#define eFoo uint
//	const uint  A = 0, B = 1 ;
//
// Value text is kept byte for byte apart from a dropped trailing comma. Headers
// shared with C++ (cpp set) must declare the underlying type; C headers default
// to uint. Malformed enums are reported and left untouched. When nothing is
// rewritten the returned string is src itself.
func PreprocessEnums(path, src string, cpp bool) (string, hcl.Diagnostics) {
	if !strings.Contains(src, "enum") {
		return src, nil
	}

	toks := Tokens(src)
	var (
		decls []enumDecl
		diags hcl.Diagnostics
	)
	for i := 0; i < len(toks); i++ {
		if !toks[i].Is(TokenIdent, "enum") {
			continue
		}
		if i > 0 && toks[i-1].Is(TokenIdent, "typedef") {
			continue
		}
		decl, next, d := parseEnum(path, toks, i, cpp)
		if d != nil {
			diags = append(diags, d)
		}
		if decl != nil {
			decls = append(decls, *decl)
		}
		i = next
	}

	if len(decls) == 0 {
		return src, diags
	}

	var sb strings.Builder
	sb.Grow(len(src) + len(decls)*32)
	last := 0
	for _, d := range decls {
		sb.WriteString(src[last:d.start])
		sb.WriteString("#define ")
		sb.WriteString(d.name)
		sb.WriteByte(' ')
		sb.WriteString(d.glslType)
		sb.WriteString("\nconst ")
		sb.WriteString(d.glslType)
		sb.WriteByte(' ')
		if d.trailingComma >= 0 {
			sb.WriteString(src[d.valuesStart:d.trailingComma])
			sb.WriteString(src[d.trailingComma+1 : d.valuesEnd])
		} else {
			sb.WriteString(src[d.valuesStart:d.valuesEnd])
		}
		last = d.semicolon
	}
	sb.WriteString(src[last:])
	return sb.String(), diags
}

// parseEnum parses the enum starting at toks[i]. It returns the declaration to
// rewrite (nil when skipped), the index of the last token consumed and an
// optional diagnostic.
func parseEnum(path string, toks []Token, i int, cpp bool) (*enumDecl, int, *hcl.Diagnostic) {
	kw := toks[i]
	at := func(j int) Token {
		if j < len(toks) {
			return toks[j]
		}
		return Token{Kind: TokenEOF}
	}

	j := i + 1
	if t := at(j); t.Is(TokenIdent, "class") || t.Is(TokenIdent, "struct") {
		j++
	}
	nameTok := at(j)
	if nameTok.Kind != TokenIdent {
		return nil, i, diag.Errorf(path, kw.Pos, len(kw.Text), "Enum name not found")
	}
	j++

	glslType := ""
	if at(j).Is(TokenPunct, ":") {
		typTok := at(j + 1)
		if typTok.Kind != TokenIdent {
			return nil, j, diag.Errorf(path, at(j).Pos, 1, "Missing underlying type for enum %q", nameTok.Text)
		}
		if at(j+2).Is(TokenPunct, ";") {
			// Forward declaration.
			return nil, j + 2, nil
		}
		t, ok := enumTypes[typTok.Text]
		if !ok {
			return nil, j + 1, diag.Errorf(path, typTok.Pos, len(typTok.Text), "Unsupported underlying type %q for enum %q", typTok.Text, nameTok.Text)
		}
		glslType = t
		j += 2
	}

	open := at(j)
	if open.Is(TokenPunct, ";") {
		return nil, j, nil
	}
	if open.Kind == TokenIdent && glslType == "" {
		// `enum eFoo var;` uses the type, it does not declare it.
		return nil, j - 1, nil
	}
	if !open.Is(TokenPunct, "{") {
		return nil, j - 1, diag.Errorf(path, nameTok.Pos, len(nameTok.Text), "Missing \"{\" token after enum %q", nameTok.Text)
	}
	if glslType == "" {
		if cpp {
			return nil, j, diag.Errorf(path, nameTok.Pos, len(nameTok.Text), "Enum %q in a C++ header must declare its underlying type (\": uint32_t\")", nameTok.Text)
		}
		glslType = "uint"
	}

	comma := -1
	k := j + 1
	for ; k < len(toks); k++ {
		t := toks[k]
		if t.Is(TokenPunct, "}") {
			break
		}
		if t.Is(TokenPunct, "{") {
			return nil, k, diag.Errorf(path, t.Pos, 1, "Nested \"{\" token in enum %q", nameTok.Text)
		}
		if t.Is(TokenPunct, ",") {
			comma = t.Pos.Byte
		} else {
			comma = -1
		}
	}
	if k >= len(toks) {
		return nil, len(toks), diag.Errorf(path, open.Pos, 1, "Missing \"}\" token for enum %q", nameTok.Text)
	}
	closeTok := toks[k]
	if k == j+1 {
		// Empty enum, nothing to declare.
		return nil, k, nil
	}

	semi := at(k + 1)
	if !semi.Is(TokenPunct, ";") {
		return nil, k, diag.Errorf(path, closeTok.Pos, 1, "Missing \";\" token after enum %q", nameTok.Text)
	}

	return &enumDecl{
		start:         kw.Pos.Byte,
		valuesStart:   open.End(),
		valuesEnd:     closeTok.Pos.Byte,
		semicolon:     semi.Pos.Byte,
		name:          nameTok.Text,
		glslType:      glslType,
		trailingComma: comma,
	}, k + 1, nil
}
