package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Write encodes m as OBJ text: one "v" line per vertex followed by one
// "f" line per face, with 1-based indices.
func Write(w io.Writer, m *Mesh, comments ...string) error {
	bw := bufio.NewWriter(w)

	for _, c := range comments {
		fmt.Fprintf(bw, "# %s\n", c)
	}

	for _, v := range m.vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatCoord(v.X), formatCoord(v.Y), formatCoord(v.Z))
	}

	var err error
	m.EachFace(func(_ int, face []int) {
		if err != nil {
			return
		}
		if _, err = bw.WriteString("f"); err != nil {
			return
		}
		for _, idx := range face {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx + 1))
		}
		err = bw.WriteByte('\n')
	})
	if err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	return nil
}

// formatCoord prints the shortest representation that parses back to the
// same float64.
func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
