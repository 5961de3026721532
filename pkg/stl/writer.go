package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/objfeat/pkg/analysis"
	"github.com/philipparndt/objfeat/pkg/geometry"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

// WriteBinary encodes m as binary STL. Polygons are fan triangulated
// from their first corner and each facet carries its computed normal.
// The header is truncated to 80 bytes.
func WriteBinary(w io.Writer, m *mesh.Mesh, header string) error {
	var triangles []geometry.Triangle
	corners := make([]geometry.Vector3, 0, 8)
	m.EachFace(func(i int, face []int) {
		if len(face) < 3 {
			return
		}
		corners = m.FaceVertices(corners[:0], i)
		for j := 1; j < len(corners)-1; j++ {
			triangles = append(triangles, geometry.NewTriangle(corners[0], corners[j], corners[j+1]))
		}
	})
	if uint64(len(triangles)) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for STL: %d", len(triangles))
	}

	bw := bufio.NewWriter(w)

	var head [headerSize]byte
	copy(head[:], header)
	bw.Write(head[:])

	var buf [recordSize]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(triangles)))
	bw.Write(buf[:4])

	for _, t := range triangles {
		putVector(buf[0:], t.Normal(analysis.Epsilon))
		putVector(buf[12:], t.A)
		putVector(buf[24:], t.B)
		putVector(buf[36:], t.C)
		binary.LittleEndian.PutUint16(buf[48:], 0)
		bw.Write(buf[:])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
