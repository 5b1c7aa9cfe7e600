package typemap

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a native type name has no entry in the table.
// It is always fatal: guessing a type would silently corrupt the generated ABI.
var ErrUnknownType = errors.New("unknown type")

// aliases maps native scalar names to the fixed-width aliases of the target
// header. These are the names that receive the configured namespace.
var aliases = map[string]string{
	"GLbitfield": "u32",
	"GLboolean":  "u8",
	"GLenum":     "u32",
	"GLint":      "i32",
	"GLint64":    "i64",
	"GLintptr":   "iptr",
	"GLshort":    "i16",
	"GLsizei":    "i32",
	"GLsizeiptr": "iptr",
	"GLuint":     "u32",
	"GLuint64":   "u64",
	"GLushort":   "u16",
}

// builtins maps native names onto plain C types, never namespaced.
var builtins = map[string]string{
	"GLbyte":      "char",
	"GLchar":      "char",
	"GLdouble":    "double",
	"GLfloat":     "float",
	"GLubyte":     "char",
	"GLsync":      "void*",
	"GLDEBUGPROC": "void*",
	"void":        "void",
}

// Mapper resolves native type names. Namespace is prepended to fixed-width
// aliases only, e.g. "vx::" turns GLuint into vx::u32.
type Mapper struct {
	Namespace string
}

// Lookup returns the mapped name of the native type.
func (m Mapper) Lookup(native string) (string, error) {
	if alias, ok := aliases[native]; ok {
		return m.Namespace + alias, nil
	}
	if builtin, ok := builtins[native]; ok {
		return builtin, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownType, native)
}
