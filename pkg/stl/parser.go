// Package stl imports STL files, ASCII or binary, as indexed meshes.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/objfeat/pkg/geometry"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

const (
	headerSize = 80
	recordSize = 50 // normal, three corners (float32 each) and a uint16 attribute
)

// ErrEmptySource is returned for a file without any bytes.
var ErrEmptySource = errors.New("STL source is empty")

// ParseFile reads an STL file and returns its welded Mesh. Normals
// stored in the file are ignored; they are recomputed from the corners.
func ParseFile(filename string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	m, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ParseBytes detects the encoding of data and parses it. Binary files
// may also start with "solid", so the record count in the header decides
// when it matches the length exactly.
func ParseBytes(data []byte) (*mesh.Mesh, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySource
	}
	if isBinary(data) {
		return parseBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(data)
}

func isBinary(data []byte) bool {
	if len(data) < headerSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	return uint64(len(data)) == headerSize+4+uint64(count)*recordSize
}

// parseASCII reads "vertex" lines in groups of three per facet. Facets
// with unparsable coordinates or a corner count other than three are
// skipped.
func parseASCII(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	w := mesh.NewWelder(0, 0)

	var (
		corners []geometry.Vector3
		valid   = true
	)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "facet":
			corners = corners[:0]
			valid = true

		case "vertex":
			v, ok := parseCorner(fields[1:])
			if !ok {
				valid = false
				continue
			}
			corners = append(corners, v)

		case "endfacet":
			if valid && len(corners) == 3 {
				w.Add(corners[0], corners[1], corners[2])
			}
			corners = corners[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return w.Mesh()
}

func parseCorner(fields []string) (geometry.Vector3, bool) {
	if len(fields) < 3 {
		return geometry.Vector3{}, false
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, false
		}
		xyz[i] = f
	}
	v := geometry.NewVector3(xyz[0], xyz[1], xyz[2])
	return v, v.IsFinite()
}

// parseBinary reads the 80-byte header, the record count and one 50-byte
// record per triangle.
func parseBinary(data []byte) (*mesh.Mesh, error) {
	if len(data) < headerSize+4 {
		return nil, fmt.Errorf("binary STL truncated: %d bytes", len(data))
	}

	count := binary.LittleEndian.Uint32(data[headerSize:])
	records := data[headerSize+4:]
	if uint64(len(records)) < uint64(count)*recordSize {
		return nil, fmt.Errorf("binary STL truncated: header announces %d triangles, found %d",
			count, len(records)/recordSize)
	}

	w := mesh.NewWelder(0, int(count))
	for i := 0; i < int(count); i++ {
		rec := records[i*recordSize : (i+1)*recordSize]
		a, aok := readCorner(rec[12:])
		b, bok := readCorner(rec[24:])
		c, cok := readCorner(rec[36:])
		if aok && bok && cok {
			w.Add(a, b, c)
		}
	}
	return w.Mesh()
}

func readCorner(b []byte) (geometry.Vector3, bool) {
	v := geometry.NewVector3(
		float64(readFloat32(b[0:])),
		float64(readFloat32(b[4:])),
		float64(readFloat32(b[8:])),
	)
	return v, v.IsFinite()
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
