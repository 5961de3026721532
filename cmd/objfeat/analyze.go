package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/objfeat/internal/history"
	"github.com/philipparndt/objfeat/pkg/analysis"
	"github.com/philipparndt/objfeat/pkg/mesh"
	"github.com/philipparndt/objfeat/pkg/openscad"
	"github.com/philipparndt/objfeat/pkg/stl"
)

// analyzeFile loads filename and calculates its descriptors. Files ending
// in .stl are read as STL, .scad files are rendered with OpenSCAD and
// everything else is read as OBJ.
func analyzeFile(ctx context.Context, filename string) (*analysis.Result, error) {
	m, err := loadMesh(ctx, filename)
	if err != nil {
		return nil, err
	}

	result, err := analysis.Calculate(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return result, nil
}

func loadMesh(ctx context.Context, filename string) (*mesh.Mesh, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".scad":
		logger.Info("rendering OpenSCAD file", "file", filename)
		m, err := openscad.NewRenderer(filepath.Dir(filename)).Render(ctx, filepath.Base(filename))
		if err != nil {
			return nil, err
		}
		logger.Debug("rendered OpenSCAD", "file", filename, "vertices", m.VertexCount(), "faces", m.FaceCount())
		return m, nil

	case ".stl":
		m, err := stl.ParseFile(filename)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed STL", "file", filename, "vertices", m.VertexCount(), "faces", m.FaceCount())
		return m, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	m, stats, err := mesh.ParseWithStats(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	logger.Debug("parsed OBJ",
		"file", filename,
		"lines", stats.Lines,
		"vertices", m.VertexCount(),
		"faces", m.FaceCount(),
		"skipped_vertices", stats.SkippedVertices,
		"skipped_references", stats.SkippedReferences,
		"dropped_faces", stats.DroppedFaces)
	return m, nil
}

// recordHistory appends payload under the base name of filename.
func recordHistory(filename string, payload map[string]string) error {
	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	entry, err := history.NewStore(path).Append(filepath.Base(filename), payload)
	if err != nil {
		return err
	}
	logger.Debug("recorded history entry", "id", entry.ID, "path", path)
	return nil
}
