package lexer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hellenic-development/gl-header/pkg/segment"
	"github.com/hellenic-development/gl-header/pkg/typemap"
)

// ErrMalformedConstant is returned when a define line has no usable name or its
// value is not a hexadecimal literal.
var ErrMalformedConstant = errors.New("malformed constant")

// LineError ties a lexing failure to the source line that caused it.
type LineError struct {
	Line string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v in line %q", e.Err, e.Line)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// TypeRef is a mapped type plus its level of indirection.
type TypeRef struct {
	Base     string
	Pointers int
}

// String renders the type the way it appears in the generated header, e.g. "u32*".
func (t TypeRef) String() string {
	return t.Base + strings.Repeat("*", t.Pointers)
}

// IsVoid reports whether t is a plain void.
func (t TypeRef) IsVoid() bool {
	return t.Base == "void" && t.Pointers == 0
}

// Constant is a lexed #define.
type Constant struct {
	Name  string
	Value uint64
}

// Param is one function parameter.
type Param struct {
	Type TypeRef
	Name string
}

// Function is a lexed GLAPI declaration.
type Function struct {
	Name   string
	Return TypeRef
	Params []Param
}

// IsVoidParams reports whether the parameter list was declared as "(void)".
func (f Function) IsVoidParams() bool {
	return len(f.Params) == 1 && f.Params[0].Type.IsVoid()
}

// Block is a segment.Block after lexing.
type Block struct {
	Version   segment.Version
	Constants []Constant
	Functions []Function
}

var (
	nameRe   = regexp.MustCompile(`\bgl\w+`)
	paramsRe = regexp.MustCompile(`\((.*)\)`)
	typeRe   = regexp.MustCompile(`^\w+`)
	constRe  = regexp.MustCompile(`\bconst\b`)
)

// Lexer turns raw declaration lines into typed records.
type Lexer struct {
	Types typemap.Mapper
}

// New returns a Lexer resolving types with m.
func New(m typemap.Mapper) *Lexer {
	return &Lexer{Types: m}
}

// LexBlock lexes every line of b. The first failure aborts the block.
func (l *Lexer) LexBlock(b segment.Block) (Block, error) {
	out := Block{
		Version:   b.Version,
		Constants: make([]Constant, 0, len(b.Defines)),
		Functions: make([]Function, 0, len(b.Functions)),
	}

	for _, line := range b.Defines {
		c, err := LexConstant(line)
		if err != nil {
			return Block{}, err
		}
		out.Constants = append(out.Constants, c)
	}

	for _, line := range b.Functions {
		f, err := l.LexFunction(line)
		if err != nil {
			return Block{}, err
		}
		out.Functions = append(out.Functions, f)
	}

	return out, nil
}

// LexConstant parses "#define NAME 0xVALUE[u][ll]".
func LexConstant(line string) (Constant, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "#define" {
		return Constant{}, &LineError{Line: line, Err: ErrMalformedConstant}
	}

	name := fields[1]
	lit := strings.TrimRight(fields[len(fields)-1], "uUlL")
	digits := strings.TrimPrefix(strings.TrimPrefix(lit, "0x"), "0X")

	value, err := strconv.ParseUint(digits, 16, 64)
	if err != nil || digits == "" {
		return Constant{}, &LineError{Line: line, Err: fmt.Errorf("%w: value %q is not hexadecimal", ErrMalformedConstant, lit)}
	}

	return Constant{Name: name, Value: value}, nil
}

// LexFunction parses "GLAPI ret APIENTRY glName (params);".
func (l *Lexer) LexFunction(line string) (Function, error) {
	decl := strings.ReplaceAll(line, "GLAPI", "")
	decl = strings.ReplaceAll(decl, "APIENTRY", "")
	decl = strings.TrimRight(strings.TrimSpace(decl), ";")

	loc := nameRe.FindStringIndex(decl)
	if loc == nil {
		return Function{}, &LineError{Line: line, Err: errors.New("no function name")}
	}
	name := decl[loc[0]:loc[1]]

	ret, err := l.lexType(decl[:loc[0]])
	if err != nil {
		return Function{}, &LineError{Line: line, Err: err}
	}

	m := paramsRe.FindStringSubmatch(decl[loc[1]:])
	if m == nil {
		return Function{}, &LineError{Line: line, Err: errors.New("no parameter list")}
	}

	var params []Param
	if list := strings.TrimSpace(m[1]); list != "" {
		for _, raw := range strings.Split(list, ",") {
			p, err := l.lexParam(raw)
			if err != nil {
				return Function{}, &LineError{Line: line, Err: err}
			}
			params = append(params, p)
		}
	}

	return Function{Name: name, Return: ret, Params: params}, nil
}

func (l *Lexer) lexType(text string) (TypeRef, error) {
	text = strings.TrimSpace(constRe.ReplaceAllString(text, ""))

	native := typeRe.FindString(text)
	base, err := l.Types.Lookup(native)
	if err != nil {
		return TypeRef{}, err
	}

	return TypeRef{Base: base, Pointers: strings.Count(text, "*")}, nil
}

func (l *Lexer) lexParam(raw string) (Param, error) {
	text := strings.TrimSpace(constRe.ReplaceAllString(raw, ""))

	t, err := l.lexType(text)
	if err != nil {
		return Param{}, err
	}

	fields := strings.Fields(strings.ReplaceAll(text, "*", " "))
	if len(fields) == 0 {
		return Param{}, fmt.Errorf("empty parameter in %q", raw)
	}

	return Param{Type: t, Name: fields[len(fields)-1]}, nil
}
