package glheader

import (
	"context"
	"fmt"
	"strings"

	"github.com/hellenic-development/gl-header/pkg/allowlist"
	"github.com/hellenic-development/gl-header/pkg/emitter"
	"github.com/hellenic-development/gl-header/pkg/lexer"
	"github.com/hellenic-development/gl-header/pkg/segment"
	"github.com/hellenic-development/gl-header/pkg/source"
	"github.com/hellenic-development/gl-header/pkg/typemap"
)

// Errors that abort a run. Match them with errors.Is.
var (
	ErrMalformedConstant = lexer.ErrMalformedConstant
	ErrUnknownType       = typemap.ErrUnknownType
	ErrMissingInput      = source.ErrMissingInput
)

// DefaultMaxVersion excludes GL 4.5 and later.
var DefaultMaxVersion = segment.Version{Major: 4, Minor: 5}

// Options configures a generation run.
type Options struct {
	Source     string // path or http(s) URL; ignored when SourceText is set
	SourceText string
	AllowList  *allowlist.List // nil = allowlist.Default()
	MaxVersion segment.Version // blocks at or above are dropped; zero = DefaultMaxVersion
	Namespace  string          // prefix for fixed-width aliases, e.g. "vx::"
	Header     emitter.Config  // zero fields take emitter.DefaultConfig values
	Logger     Logger          // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the generated header and what went into it.
type Result struct {
	Header             string
	Blocks             []segment.Version
	Selection          allowlist.Selection
	LexedConstants     int
	LexedFunctions     int
	UnmatchedConstants []string // allow-listed, but absent from the retained blocks
	UnmatchedFunctions []string
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Run executes the pipeline: load, segment, lex, filter, render.
// Any error aborts the run; there is no partial output.
func Run(ctx context.Context, opts Options) (*Result, error) {
	// Apply defaults.
	if opts.AllowList == nil {
		opts.AllowList = allowlist.Default()
	}
	if opts.MaxVersion == (segment.Version{}) {
		opts.MaxVersion = DefaultMaxVersion
	}
	def := emitter.DefaultConfig()
	if opts.Header.Include == "" {
		opts.Header.Include = def.Include
	}
	if opts.Header.Loader == "" {
		opts.Header.Loader = def.Loader
	}
	if opts.Header.ImplementationFlag == "" {
		opts.Header.ImplementationFlag = def.ImplementationFlag
	}

	text := opts.SourceText
	if text == "" {
		opts.logInfo("Loading %s...", opts.Source)
		var err error
		text, err = source.NewClient().Load(ctx, opts.Source)
		if err != nil {
			return nil, err
		}
	}

	opts.logInfo("Segmenting version blocks below %s...", opts.MaxVersion)
	blocks := segment.Split(text, opts.MaxVersion)
	if len(blocks) == 0 {
		opts.logWarn("No version blocks found below %s", opts.MaxVersion)
	}

	result := &Result{}
	lx := lexer.New(typemap.Mapper{Namespace: opts.Namespace})
	lexed := make([]lexer.Block, 0, len(blocks))
	for _, b := range blocks {
		lb, err := lx.LexBlock(b)
		if err != nil {
			opts.logError("GL %s: %v", b.Version, err)
			return nil, fmt.Errorf("lex GL %s: %w", b.Version, err)
		}
		lexed = append(lexed, lb)
		result.Blocks = append(result.Blocks, b.Version)
		result.LexedConstants += len(lb.Constants)
		result.LexedFunctions += len(lb.Functions)
	}
	opts.logInfo("Lexed %d constant(s) and %d function(s) from %d block(s)", result.LexedConstants, result.LexedFunctions, len(lexed))

	result.Selection = opts.AllowList.Filter(lexed)
	result.UnmatchedConstants, result.UnmatchedFunctions = opts.AllowList.Unmatched(result.Selection)
	for _, name := range append(append([]string{}, result.UnmatchedConstants...), result.UnmatchedFunctions...) {
		opts.logWarn("%s is allow-listed but not declared below GL %s", name, opts.MaxVersion)
	}

	opts.logInfo("Rendering %d constant(s) and %d function(s)...", len(result.Selection.Constants), len(result.Selection.Functions))
	header, err := emitter.Render(result.Selection, opts.Header)
	if err != nil {
		return nil, err
	}
	result.Header = header

	return result, nil
}

// LoadAllowList reads a YAML allow-list; an empty path selects the built-in list.
func LoadAllowList(path string) (*allowlist.List, error) {
	if path == "" {
		return allowlist.Default(), nil
	}
	l, err := allowlist.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	return l, nil
}

// ParseVersion parses a "MAJOR.MINOR" version ceiling such as "4.5".
func ParseVersion(s string) (segment.Version, error) {
	return segment.ParseVersion(s)
}

// ParseList parses a comma-separated string and returns the non-empty entries.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Version is the gl-header release.
const Version = "0.1.0"
