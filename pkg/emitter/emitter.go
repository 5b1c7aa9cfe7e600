package emitter

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/hellenic-development/gl-header/pkg/allowlist"
	"github.com/hellenic-development/gl-header/pkg/lexer"
)

// Config names the fixed parts of the generated header.
type Config struct {
	Include            string // alias header providing u32, i32, ...
	Loader             string // name of the generated loader function
	ImplementationFlag string // macro guarding pointer storage and the loader body
}

// DefaultConfig returns the names used by the engine header.
func DefaultConfig() Config {
	return Config{
		Include:            "common/aliases.h",
		Loader:             "vx_gl_init",
		ImplementationFlag: "VX_GL_IMPLEMENTATION",
	}
}

type document struct {
	Config
	Constants []lexer.Constant
	Functions []lexer.Function
}

const declarationsTemplate = `#pragma once

#include "{{.Include}}"

// clang-format off

{{range .Constants}}#define {{.Name}} {{hex .Value}}
{{end}}
{{range .Functions}}extern {{pointer .}};
{{end}}
extern void {{.Loader}}(void *(*addr)(const char *));
`

const implementationTemplate = `#ifdef {{.ImplementationFlag}}

{{range .Functions}}{{pointer .}};
{{end}}
void {{.Loader}}(void *(*addr)(const char *))
{
{{range .Functions}}    {{.Name}} = ({{cast .}})addr("{{.Name}}");
{{end}}}

#endif // {{.ImplementationFlag}}
`

const headerTemplate = `{{template "declarations" .}}
{{template "implementation" .}}
// clang-format on
`

var tmpl = func() *template.Template {
	t := template.New("header").Funcs(template.FuncMap{
		"hex":     hex,
		"pointer": pointer,
		"cast":    cast,
	})
	template.Must(t.Parse(headerTemplate))
	template.Must(t.New("declarations").Parse(declarationsTemplate))
	template.Must(t.New("implementation").Parse(implementationTemplate))
	return t
}()

// Render produces the complete header for sel.
func Render(sel allowlist.Selection, cfg Config) (string, error) {
	return render("header", sel, cfg)
}

// RenderDeclarations produces only the public part: macros, extern pointers and
// the loader prototype.
func RenderDeclarations(sel allowlist.Selection, cfg Config) (string, error) {
	return render("declarations", sel, cfg)
}

// RenderImplementation produces only the region guarded by cfg.ImplementationFlag.
func RenderImplementation(sel allowlist.Selection, cfg Config) (string, error) {
	return render("implementation", sel, cfg)
}

func render(name string, sel allowlist.Selection, cfg Config) (string, error) {
	var sb strings.Builder
	doc := document{Config: cfg, Constants: sel.Constants, Functions: sel.Functions}
	if err := tmpl.ExecuteTemplate(&sb, name, doc); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%08xu", v)
}

// pointer renders "ret(*name)(type ident, ...)".
func pointer(f lexer.Function) string {
	return fmt.Sprintf("%s(*%s)(%s)", f.Return, f.Name, signature(f, true))
}

// cast renders "ret(*)(type, ...)".
func cast(f lexer.Function) string {
	return fmt.Sprintf("%s(*)(%s)", f.Return, signature(f, false))
}

func signature(f lexer.Function, idents bool) string {
	if len(f.Params) == 0 {
		return "void"
	}

	parts := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		if idents {
			parts = append(parts, p.Type.String()+" "+p.Name)
		} else {
			parts = append(parts, p.Type.String())
		}
	}
	return strings.ReplaceAll(strings.Join(parts, ", "), "void void", "void")
}
