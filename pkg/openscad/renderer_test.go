package openscad

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDependencies(t *testing.T) {
	dir := t.TempDir()
	main := write(t, filepath.Join(dir, "main.scad"), `use <lib/shapes.scad>
include <./params.scad>
// use <ignored.scad>
cube(size);
`)
	shapes := write(t, filepath.Join(dir, "lib", "shapes.scad"), "include <../params.scad>\nmodule s() {}\n")
	params := write(t, filepath.Join(dir, "params.scad"), "use <main.scad>\nsize = 2;\n")

	deps, err := NewRenderer(dir).Dependencies("main.scad")
	require.NoError(t, err)
	assert.Equal(t, []string{main, shapes, params}, deps)
}

func TestDependenciesFallBackToWorkDir(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "models", "part.scad"), "use <common.scad>\n")
	common := write(t, filepath.Join(dir, "common.scad"), "")

	deps, err := NewRenderer(dir).Dependencies(filepath.Join("models", "part.scad"))
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, common, deps[1])
}

func TestDependenciesMissingFile(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.scad"), "include <./missing.scad>\n")

	_, err := NewRenderer(dir).Dependencies("main.scad")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// fakeOpenSCAD installs an executable script with the given body.
func fakeOpenSCAD(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := write(t, filepath.Join(t.TempDir(), "openscad"), "#!/bin/sh\n"+body)
	require.NoError(t, os.Chmod(script, 0o755))
	return script
}

func TestRender(t *testing.T) {
	// Writes one ASCII STL triangle to the path following -o.
	script := fakeOpenSCAD(t, `cat > "$2" <<'STL'
solid fake
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid fake
STL
`)

	dir := t.TempDir()
	write(t, filepath.Join(dir, "part.scad"), "cube(1);\n")

	r := NewRenderer(dir)
	r.Command = script
	m, err := r.Render(context.Background(), "part.scad")
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.FaceCount())
}

func TestRenderFailure(t *testing.T) {
	script := fakeOpenSCAD(t, "echo 'Parser error in line 1' >&2\nexit 1\n")

	r := NewRenderer(t.TempDir())
	r.Command = script
	_, err := r.Render(context.Background(), "broken.scad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parser error in line 1")
}

func TestRenderNotInstalled(t *testing.T) {
	r := NewRenderer(t.TempDir())
	r.Command = "objfeat-no-such-openscad"
	_, err := r.Render(context.Background(), "part.scad")
	assert.ErrorIs(t, err, ErrNotInstalled)
}
