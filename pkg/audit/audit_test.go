package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/gl-header/pkg/allowlist"
	"github.com/hellenic-development/gl-header/pkg/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "integrations", "gl", "sdl_gl_platform.cpp"), `
void render()
{
    glClear(GL_COLOR_BUFFER_BIT | GL_DEPTH_BUFFER_BIT);
    glClearColor(0.f, 0.f, 0.f, 1.f);
    glEnable(GL_BLEND);
}
`)
	// not in the scanned file set, so its references do not count
	writeFile(t, filepath.Join(dir, "editor", "other.cpp"), "glViewport(0, 0, w, h); GL_TRUE;\n")

	list := allowlist.New(
		[]string{"GL_COLOR_BUFFER_BIT", "GL_DEPTH_BUFFER_BIT", "GL_BLEND", "GL_TRUE"},
		[]string{"glClear", "glClearColor", "glEnable", "glViewport", "glDisable"},
	)

	report, err := Scan(context.Background(), Config{Dir: dir}, list)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "integrations", "gl", "sdl_gl_platform.cpp")}, report.Files)
	assert.Equal(t, []string{"GL_TRUE"}, report.UnusedConstants)
	assert.Equal(t, []string{"glViewport", "glDisable"}, report.UnusedFunctions)
	assert.Equal(t, 3, report.Unused())
	assert.Equal(t, 1, report.Counts["glClear"])
	assert.Equal(t, 1, report.Counts["glClearColor"])
}

func TestScanSingleReference(t *testing.T) {
	dir := t.TempDir()
	list := allowlist.New(nil, []string{"glDrawArraysInstancedBaseInstance"})

	writeFile(t, filepath.Join(dir, "sdl_gl_platform.cpp"), "// nothing here\n")
	report, err := Scan(context.Background(), Config{Dir: dir}, list)
	require.NoError(t, err)
	assert.Equal(t, []string{"glDrawArraysInstancedBaseInstance"}, report.UnusedFunctions)

	writeFile(t, filepath.Join(dir, "sdl_gl_platform.cpp"), "glDrawArraysInstancedBaseInstance(GL_TRIANGLES, 0, 3, 1, 0);\n")
	report, err = Scan(context.Background(), Config{Dir: dir}, list)
	require.NoError(t, err)
	assert.Empty(t, report.UnusedFunctions)
}

func TestScanMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "renderer.cpp"), "glEnable(GL_BLEND);\n")
	writeFile(t, filepath.Join(dir, "b", "renderer.cpp"), "glEnable(GL_DEPTH_TEST);\n")
	writeFile(t, filepath.Join(dir, "b", "ui.cpp"), "glDisable(GL_SCISSOR_TEST);\n")

	list := allowlist.New([]string{"GL_BLEND", "GL_DEPTH_TEST", "GL_SCISSOR_TEST"}, []string{"glEnable", "glDisable"})
	report, err := Scan(context.Background(), Config{Dir: dir, Files: []string{"renderer.cpp", "ui.cpp"}, Concurrency: 2}, list)
	require.NoError(t, err)

	assert.Len(t, report.Files, 3)
	assert.Equal(t, 2, report.Counts["glEnable"])
	assert.Zero(t, report.Unused())
}

func TestScanIgnoresPartialNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sdl_gl_platform.cpp"), "myglClear(); glClearDepth(1.0);\n")

	list := allowlist.New(nil, []string{"glClear"})
	report, err := Scan(context.Background(), Config{Dir: dir}, list)
	require.NoError(t, err)
	assert.Equal(t, []string{"glClear"}, report.UnusedFunctions)
}

func TestScanMissingDirectory(t *testing.T) {
	list := allowlist.New(nil, nil)

	_, err := Scan(context.Background(), Config{Dir: filepath.Join(t.TempDir(), "missing")}, list)
	assert.ErrorIs(t, err, source.ErrMissingInput)

	_, err = Scan(context.Background(), Config{}, list)
	assert.ErrorIs(t, err, source.ErrMissingInput)
}
