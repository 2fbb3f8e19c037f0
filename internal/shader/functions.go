package shader

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/shaderdeps/internal/diag"
)

// MaxParameters is the largest number of parameters recorded for a library
// function. Extra parameters are reported and dropped.
const MaxParameters = 36

// Qualifier is the storage qualifier of a function parameter.
type Qualifier uint8

const (
	QualIn Qualifier = iota
	QualOut
	QualInout
)

func (q Qualifier) String() string {
	switch q {
	case QualOut:
		return "out"
	case QualInout:
		return "inout"
	default:
		return "in"
	}
}

func parseQualifier(s string) Qualifier {
	switch s {
	case "out":
		return QualOut
	case "inout":
		return QualInout
	default:
		return QualIn
	}
}

// Type is the GPU type of a function parameter.
type Type uint8

const (
	TypeNone Type = iota
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat3
	TypeMat4
	TypeTex1DArray
	TypeTex2DArray
	TypeTex2D
	TypeTex3D
	TypeClosure
)

var typeNames = map[string]Type{
	"float":          TypeFloat,
	"vec2":           TypeVec2,
	"vec3":           TypeVec3,
	"vec4":           TypeVec4,
	"mat3":           TypeMat3,
	"mat4":           TypeMat4,
	"sampler1DArray": TypeTex1DArray,
	"sampler2DArray": TypeTex2DArray,
	"sampler2D":      TypeTex2D,
	"sampler3D":      TypeTex3D,
	"Closure":        TypeClosure,
}

// ParseType maps a GLSL type name to a Type. Unknown names give TypeNone and
// false.
func ParseType(s string) (Type, bool) {
	t, ok := typeNames[s]
	return t, ok
}

func (t Type) String() string {
	for name, v := range typeNames {
		if v == t {
			return name
		}
	}
	return "none"
}

// paramQualifiers are the qualifier-position keywords skipped while looking for
// a parameter's type and name. Only in/out/inout are recorded.
var paramQualifiers = map[string]bool{
	"in": true, "out": true, "inout": true, "const": true,
	"highp": true, "mediump": true, "lowp": true,
	"flat": true, "noperspective": true, "smooth": true, "precise": true,
}

// Param is one parameter of a library function.
type Param struct {
	Qualifier Qualifier
	Type      Type
	// TypeName is the type as written, kept for unknown types.
	TypeName string
	Name     string
}

func (p Param) String() string {
	return p.Qualifier.String() + " " + p.TypeName
}

// Function is a void function defined by a material library unit.
type Function struct {
	Name   string
	Params []Param
	// Pos is the position of the function name in its unit's text.
	Pos hcl.Pos
	// Unit is the unit that defines the function. It is nil until the
	// function is attached by NewUnit.
	Unit *Unit
}

// ReturnType is always void; only void functions are catalogued.
func (f *Function) ReturnType() string { return "void" }

// Filename returns the logical name of the owning unit, or "" if detached.
func (f *Function) Filename() string {
	if f.Unit == nil {
		return ""
	}
	return f.Unit.Name
}

// Signature renders the function as `name(in float, out vec4)`.
func (f *Function) Signature() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

// ScanFunctions finds the top-level `void name(...) {` definitions of a
// material library source. Prototypes, overflowing parameter lists and
// unknown parameter types are reported; the functions are still returned
// except for prototypes.
func ScanFunctions(path, src string) ([]*Function, hcl.Diagnostics) {
	if !strings.Contains(src, "void") {
		return nil, nil
	}

	toks := codeTokens(src)
	var (
		funcs []*Function
		diags hcl.Diagnostics
		depth int
	)
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Is(TokenPunct, "{"):
			depth++
			continue
		case t.Is(TokenPunct, "}"):
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth != 0 || !t.Is(TokenIdent, "void") {
			continue
		}
		if i+2 >= len(toks) || toks[i+1].Kind != TokenIdent || !toks[i+2].Is(TokenPunct, "(") {
			continue
		}
		nameTok := toks[i+1]

		closeIdx := matchParen(toks, i+2)
		if closeIdx < 0 {
			break
		}
		if closeIdx+1 < len(toks) && toks[closeIdx+1].Is(TokenPunct, ";") {
			diags = append(diags, diag.Errorf(path, nameTok.Pos, len(nameTok.Text),
				"No prototypes allowed in node GLSL libraries: %q", nameTok.Text))
			i = closeIdx + 1
			continue
		}
		if closeIdx+1 >= len(toks) || !toks[closeIdx+1].Is(TokenPunct, "{") {
			i = closeIdx
			continue
		}

		fn := &Function{Name: nameTok.Text, Pos: nameTok.Pos}
		diags = append(diags, parseParams(path, fn, toks[i+3:closeIdx])...)
		funcs = append(funcs, fn)
		i = closeIdx
	}
	return funcs, diags
}

func parseParams(path string, fn *Function, toks []Token) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, arg := range splitArgs(toks) {
		if len(arg) == 1 && arg[0].Is(TokenIdent, "void") {
			continue
		}
		var words []Token
		for _, t := range arg {
			if t.Is(TokenPunct, "[") {
				break
			}
			if t.Kind == TokenIdent {
				words = append(words, t)
			}
		}
		if len(words) == 0 {
			continue
		}
		if len(fn.Params) >= MaxParameters {
			diags = append(diags, diag.Errorf(path, fn.Pos, len(fn.Name),
				"Too many parameters in function %q: only %d are supported", fn.Name, MaxParameters))
			break
		}

		p := Param{Qualifier: QualIn}
		var typeTok Token
		rest := words
		for len(rest) > 0 && paramQualifiers[rest[0].Text] {
			if q := rest[0].Text; q == "in" || q == "out" || q == "inout" {
				p.Qualifier = parseQualifier(q)
			}
			rest = rest[1:]
		}
		switch len(rest) {
		case 0:
			continue
		case 1:
			// Unnamed parameter.
			typeTok = rest[0]
		default:
			typeTok = rest[len(rest)-2]
			p.Name = rest[len(rest)-1].Text
		}
		p.TypeName = typeTok.Text
		typ, ok := ParseType(typeTok.Text)
		p.Type = typ
		if !ok {
			diags = append(diags, diag.Errorf(path, typeTok.Pos, len(typeTok.Text),
				"Unknown parameter type %q", typeTok.Text))
		}
		fn.Params = append(fn.Params, p)
	}
	return diags
}

// splitArgs splits a parameter list on top-level commas.
func splitArgs(toks []Token) [][]Token {
	var (
		args  [][]Token
		cur   []Token
		depth int
	)
	for _, t := range toks {
		switch {
		case t.Is(TokenPunct, "(") || t.Is(TokenPunct, "["):
			depth++
		case t.Is(TokenPunct, ")") || t.Is(TokenPunct, "]"):
			depth--
		case t.Is(TokenPunct, ",") && depth == 0:
			args = append(args, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		args = append(args, cur)
	}
	return args
}

// matchParen returns the index of the ')' matching the '(' at open, or -1.
func matchParen(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch {
		case toks[i].Is(TokenPunct, "("):
			depth++
		case toks[i].Is(TokenPunct, ")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// codeTokens returns the tokens of src that are not part of a preprocessor
// line.
func codeTokens(src string) []Token {
	all := Tokens(src)
	out := all[:0:0]
	skipLine := 0
	for _, t := range all {
		if t.Kind == TokenDirective {
			skipLine = t.Pos.Line
			continue
		}
		if t.Pos.Line == skipLine {
			continue
		}
		out = append(out, t)
	}
	return out
}
