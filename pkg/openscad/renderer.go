// Package openscad renders OpenSCAD sources into meshes through the
// openscad program.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/objfeat/pkg/mesh"
	"github.com/philipparndt/objfeat/pkg/stl"
)

// ErrNotInstalled is returned when the openscad program is not on PATH.
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// dependencyPattern matches `use <file>` and `include <file>` statements.
var dependencyPattern = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer turns .scad files into meshes.
type Renderer struct {
	workDir string
	// Command is the OpenSCAD executable, "openscad" by default.
	Command string
}

// NewRenderer creates a renderer resolving relative paths against workDir.
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
		Command: "openscad",
	}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// Render exports scadFile as STL into a temporary file and returns the
// parsed mesh. The temporary file is removed before Render returns.
func (r *Renderer) Render(ctx context.Context, scadFile string) (*mesh.Mesh, error) {
	program, err := exec.LookPath(r.Command)
	if err != nil {
		return nil, ErrNotInstalled
	}

	tmp, err := os.CreateTemp("", "objfeat-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary STL: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	cmd := exec.CommandContext(ctx, program, "-o", tmp.Name(), r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var errMsg strings.Builder
		fmt.Fprintf(&errMsg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			errMsg.WriteString("\nstderr: ")
			errMsg.WriteString(strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			errMsg.WriteString("\nstdout: ")
			errMsg.WriteString(strings.TrimSpace(stdout.String()))
		}
		return nil, errors.New(errMsg.String())
	}

	m, err := stl.ParseFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	return m, nil
}

// Dependencies returns scadFile followed by every file it pulls in through
// use or include, transitively, as absolute paths. Each file is listed
// once even when the includes are circular.
func (r *Renderer) Dependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string
	if err := r.collect(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) collect(scadFile string, visited map[string]bool, deps *[]string) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	direct, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}
	for _, dep := range direct {
		if err := r.collect(dep, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// parseDependencies lists the use/include targets of a single file.
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyPattern.FindStringSubmatch(line); m != nil {
			deps = append(deps, r.resolve(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolve finds dep next to the including file, falling back to the work
// directory. Explicitly relative paths (./, ../) never fall back.
func (r *Renderer) resolve(dep, dir string) string {
	local := filepath.Join(dir, dep)
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return filepath.Clean(local)
	}
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(r.abs(dep))
}
