package mesh

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/objfeat/pkg/geometry"
)

// ErrEmptySource is returned when the input holds nothing but whitespace.
var ErrEmptySource = errors.New("mesh source is empty")

// maxLineSize bounds a single OBJ line; large polygons can produce very
// long face statements.
const maxLineSize = 16 * 1024 * 1024

// ParseStats records what the parser dropped while reading a source.
type ParseStats struct {
	Lines             int // lines read, including blanks and comments
	SkippedVertices   int // vertex statements with missing or non-numeric coordinates
	SkippedReferences int // face references that did not resolve to a vertex
	DroppedFaces      int // faces left with fewer than three references
}

// ParseFile reads an OBJ file and returns its Mesh.
func ParseFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseString parses OBJ text held in memory.
func ParseString(content string) (*Mesh, error) {
	return Parse(strings.NewReader(content))
}

// ParseBytes parses OBJ text held in memory.
func ParseBytes(content []byte) (*Mesh, error) {
	return Parse(bytes.NewReader(content))
}

// Parse reads OBJ text and returns its Mesh. Only vertex (v) and face (f)
// statements contribute; malformed vertices and unresolvable face
// references are dropped rather than reported. The only errors are an
// unreadable or blank source.
func Parse(r io.Reader) (*Mesh, error) {
	m, _, err := ParseWithStats(r)
	return m, err
}

// ParseWithStats is Parse plus a record of everything that was dropped.
func ParseWithStats(r io.Reader) (*Mesh, ParseStats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		stats    ParseStats
		vertices []geometry.Vector3
		faces    [][]int
		content  bool
	)

	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		content = true
		if line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, ok := parseVertex(fields[1:])
			if !ok {
				stats.SkippedVertices++
				continue
			}
			vertices = append(vertices, v)

		case "f":
			refs := fields[1:]
			face := collect(refs, func(ref string) (int, bool) {
				return resolveIndex(ref, len(vertices))
			})
			stats.SkippedReferences += len(refs) - len(face)
			if len(face) < 3 {
				stats.DroppedFaces++
				continue
			}
			faces = append(faces, face)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("error reading OBJ: %w", err)
	}
	if !content {
		return nil, stats, ErrEmptySource
	}

	// Indices were range-checked while resolving, so New cannot fail here.
	m, err := New(vertices, faces)
	if err != nil {
		return nil, stats, err
	}
	return m, stats, nil
}

// collect applies parse to every token and keeps only the successes, in
// order.
func collect[T any](tokens []string, parse func(string) (T, bool)) []T {
	out := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		if v, ok := parse(tok); ok {
			out = append(out, v)
		}
	}
	return out
}

// parseVertex parses the X, Y and Z coordinates of a vertex statement.
// Anything after the third coordinate is ignored.
func parseVertex(fields []string) (geometry.Vector3, bool) {
	if len(fields) < 3 {
		return geometry.Vector3{}, false
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, false
		}
		c[i] = f
	}
	v := geometry.NewVector3(c[0], c[1], c[2])
	if !v.IsFinite() {
		return geometry.Vector3{}, false
	}
	return v, true
}

// resolveIndex turns a face reference such as "7", "7/2/5", "7//5" or
// "-1" into a 0-based vertex index. Positive references are 1-based;
// negative ones count back from the most recently parsed vertex.
func resolveIndex(ref string, vertexCount int) (int, bool) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil || n == 0 {
		return 0, false
	}

	idx := n - 1
	if n < 0 {
		idx = vertexCount + n
	}
	if idx < 0 || idx >= vertexCount {
		return 0, false
	}
	return idx, true
}
