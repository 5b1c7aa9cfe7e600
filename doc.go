// Package glheader generates a minimal OpenGL loader header from the Khronos
// core-profile header (glcorearb.h).
//
// Only the constants and functions named in an allow-list are kept. The output
// declares every retained constant as a macro and every retained function as an
// extern function pointer, plus a loader that resolves the pointers at runtime
// through an address callback (SDL_GL_GetProcAddress, glfwGetProcAddress, ...).
//
// The CLI lives in cmd/gl-header; this root package exposes the same pipeline
// as a Go API.
//
// # Quick start
//
//	result, err := glheader.Run(ctx, glheader.Options{
//	    Source:    "third_party/glcorearb.h",
//	    Namespace: "vx::",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("src/integrations/gl/gl.h", []byte(result.Header), 0644)
//
// # Pipeline
//
// The source text is cut into GL_VERSION_M_N blocks (pkg/segment), blocks at or
// above [Options.MaxVersion] are dropped, each remaining define and GLAPI line
// is lexed into a typed record (pkg/lexer, pkg/typemap), the records are
// filtered against the allow-list (pkg/allowlist) and rendered (pkg/emitter).
// Output order is ascending version, then declaration order, so identical input
// always produces an identical header.
//
// # Errors
//
// A malformed constant, a type missing from the type table, or a missing input
// aborts the run. Match them with errors.Is against [ErrMalformedConstant],
// [ErrUnknownType] and [ErrMissingInput]. An allow-listed name that matches
// nothing is only reported as a warning; use the audit command to find names
// the application no longer references.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package glheader
