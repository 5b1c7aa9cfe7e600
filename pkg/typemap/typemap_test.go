package typemap

import (
	"errors"
	"testing"
)

func TestMapperLookup(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		native    string
		want      string
		wantErr   bool
	}{
		{name: "bitfield", native: "GLbitfield", want: "u32"},
		{name: "sizei", native: "GLsizei", want: "i32"},
		{name: "namespaced alias", namespace: "vx::", native: "GLuint", want: "vx::u32"},
		{name: "builtin ignores namespace", namespace: "vx::", native: "GLfloat", want: "float"},
		{name: "void", native: "void", want: "void"},
		{name: "sync handle", native: "GLsync", want: "void*"},
		{name: "unknown", native: "GLhalfNV", wantErr: true},
		{name: "empty", native: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mapper{Namespace: tt.namespace}.Lookup(tt.native)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.native, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownType) {
					t.Errorf("Lookup(%q) error = %v, want ErrUnknownType", tt.native, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.native, got, tt.want)
			}
		})
	}
}
