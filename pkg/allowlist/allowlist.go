package allowlist

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/hellenic-development/gl-header/pkg/lexer"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// List is the curated set of constant and function names to keep.
// Order is preserved for reporting; lookups go through the sets built by Parse.
type List struct {
	Constants []string `yaml:"constants"`
	Functions []string `yaml:"functions"`

	constants map[string]struct{}
	functions map[string]struct{}
}

// Selection is what survives filtering, ordered by ascending version and then
// by declaration order inside each version.
type Selection struct {
	Constants []lexer.Constant
	Functions []lexer.Function
}

// Default returns the list compiled into the binary.
func Default() *List {
	l, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("allowlist: embedded default is invalid: %v", err))
	}
	return l
}

// Load reads a YAML allow-list from path.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allow-list: %w", err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a YAML allow-list document.
func Parse(data []byte) (*List, error) {
	var l List
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse allow-list: %w", err)
	}
	return New(l.Constants, l.Functions), nil
}

// New builds a List from name slices.
func New(constants, functions []string) *List {
	l := &List{
		Constants: constants,
		Functions: functions,
		constants: make(map[string]struct{}, len(constants)),
		functions: make(map[string]struct{}, len(functions)),
	}
	for _, name := range constants {
		l.constants[name] = struct{}{}
	}
	for _, name := range functions {
		l.functions[name] = struct{}{}
	}
	return l
}

// HasConstant reports whether name is an allow-listed constant.
func (l *List) HasConstant(name string) bool {
	_, ok := l.constants[name]
	return ok
}

// HasFunction reports whether name is an allow-listed function.
func (l *List) HasFunction(name string) bool {
	_, ok := l.functions[name]
	return ok
}

// Filter keeps the allow-listed entries of blocks. Blocks are visited in
// ascending version order regardless of the order they are passed in.
func (l *List) Filter(blocks []lexer.Block) Selection {
	ordered := make([]lexer.Block, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Version.Less(ordered[j].Version)
	})

	var sel Selection
	for _, b := range ordered {
		for _, c := range b.Constants {
			if l.HasConstant(c.Name) {
				sel.Constants = append(sel.Constants, c)
			}
		}
		for _, f := range b.Functions {
			if l.HasFunction(f.Name) {
				sel.Functions = append(sel.Functions, f)
			}
		}
	}
	return sel
}

// Unmatched returns the allow-listed names that sel does not contain, in list order.
func (l *List) Unmatched(sel Selection) (constants, functions []string) {
	seen := make(map[string]struct{}, len(sel.Constants)+len(sel.Functions))
	for _, c := range sel.Constants {
		seen[c.Name] = struct{}{}
	}
	for _, f := range sel.Functions {
		seen[f.Name] = struct{}{}
	}

	for _, name := range l.Constants {
		if _, ok := seen[name]; !ok {
			constants = append(constants, name)
		}
	}
	for _, name := range l.Functions {
		if _, ok := seen[name]; !ok {
			functions = append(functions, name)
		}
	}
	return constants, functions
}
