package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/objfeat/internal/history"
	"github.com/philipparndt/objfeat/pkg/analysis"
	"github.com/philipparndt/objfeat/pkg/mesh"
)

const cubeOBJ = `# unit cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`

// resetFlags restores every flag of c and its subcommands to its default
// so that runs of the shared command tree do not leak into each other.
// Slice flags keep an unexported "changed" bit that Set and Replace cannot
// clear, so the tree must not contain any.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if _, ok := f.Value.(pflag.SliceValue); ok {
			t.Fatalf("flag --%s of %q is a slice flag and cannot be reset between runs", f.Name, c.CommandPath())
		}
		require.NoError(t, f.Value.Set(f.DefValue), "reset --%s", f.Name)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(t, sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testConfig writes a config that keeps the history inside the test's
// temporary directory.
func testConfig(t *testing.T, dir, extra string) (configFile, historyFile string) {
	t.Helper()
	historyFile = filepath.Join(dir, "history.json")
	configFile = writeFile(t, dir, "objfeat.yaml", "history_file: "+historyFile+"\n"+extra)
	return configFile, historyFile
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	obj := writeFile(t, dir, "cube.obj", cubeOBJ)
	configFile, historyFile := testConfig(t, dir, "")

	out, err := execute(t, "info", "--config", configFile, "--history", obj)
	require.NoError(t, err)

	assert.Contains(t, out, "Vertices: 8\nFaces: 6\n")
	assert.Contains(t, out, "Surface area: 6.0000")
	assert.Contains(t, out, "Volume: 1.0000")
	assert.Contains(t, out, "Euler: 2.00")
	assert.Contains(t, out, "Max: (1.000000, 1.000000, 1.000000)")
	assert.Contains(t, out, "Center: (0.500000, 0.500000, 0.500000)")

	entries, err := history.NewStore(historyFile).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cube.obj", entries[0].FileName)
	assert.Equal(t, "2.00", entries[0].Results["EulerNumber"])
}

func TestInfoEmptyMesh(t *testing.T) {
	obj := writeFile(t, t.TempDir(), "empty.obj", "# nothing here\n")

	_, err := execute(t, "info", obj)
	assert.ErrorIs(t, err, analysis.ErrEmptyMesh)
}

func TestInfoMissingFile(t *testing.T) {
	_, err := execute(t, "info", filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVector(t *testing.T) {
	obj := writeFile(t, t.TempDir(), "cube.obj", cubeOBJ)

	out, err := execute(t, "vector", "--functional", "--force", "--outdoor", obj)
	require.NoError(t, err)

	values := strings.Split(strings.TrimSpace(out), ",")
	require.Len(t, values, analysis.DescriptorCount+len(analysis.RequirementFlagNames))
	assert.Equal(t, "1", values[0], "linearity of a cube")
	assert.Equal(t, "2", values[5], "Euler number of a cube")
	assert.Equal(t, []string{"1", "1", "0", "0", "0", "0", "1", "0", "0", "0"}, values[analysis.DescriptorCount:])
}

func TestVectorFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	obj := writeFile(t, dir, "cube.obj", cubeOBJ)
	configFile, _ := testConfig(t, dir, "profile:\n  decorative: true\n  detail: true\n  force: true\n")

	out, err := execute(t, "vector", "--config", configFile, "--detail=false", "--json", obj)
	require.NoError(t, err)

	var got vectorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Flags["Decorative"])
	assert.False(t, got.Flags["Detail"])
	assert.False(t, got.Flags["Force"], "force needs a functional part")
	assert.InDelta(t, 1.0, got.Descriptors["Linearity"], 1e-9)
	assert.Len(t, got.Vector, 20)
	assert.Equal(t, float32(1), got.Vector[19])
}

func TestRecommend(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	obj := writeFile(t, dir, "cube.obj", cubeOBJ)
	configFile, historyFile := testConfig(t, dir, `classifier:
  command: sh
  args:
    - -c
    - |
      cat >/dev/null
      printf '{"outputs":[[0,0,0,0,1,0],[0,1,0,0,0,0,0],[0,0,1,0,0],[0,0,1,0,0],[0,0,1,0,0]]}'
`)

	out, err := execute(t, "recommend", "--config", configFile,
		"--functional", "--weight-support", "--history", obj)
	require.NoError(t, err)

	assert.Contains(t, out, "Filament: PLA\n")
	assert.Contains(t, out, "Infill percentage: 16-30%\n")
	assert.Contains(t, out, "Infill pattern: gyroid\n")
	assert.Contains(t, out, "Confidence: 100.00%\n")
	assert.Contains(t, out, " - Consider increasing the infill density.\n")

	entries, err := history.NewStore(historyFile).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PLA", entries[0].Results["Filament"])
	assert.Equal(t, "1.0000", entries[0].Results["Linearity"])
}

func TestRecommendWithoutClassifier(t *testing.T) {
	obj := writeFile(t, t.TempDir(), "cube.obj", cubeOBJ)

	_, err := execute(t, "recommend", obj)
	assert.ErrorContains(t, err, "no classifier configured")
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	configFile, historyFile := testConfig(t, dir, "")

	out, err := execute(t, "history", "--config", configFile)
	require.NoError(t, err)
	assert.Equal(t, "No history recorded.\n", out)

	store := history.NewStore(historyFile)
	_, err = store.Append("a.obj", map[string]string{"Volume": "1.0000"})
	require.NoError(t, err)
	_, err = store.Append("b.obj", map[string]string{"Volume": "2.0000"})
	require.NoError(t, err)

	out, err = execute(t, "history", "--config", configFile, "-n", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "a.obj")
	assert.Contains(t, out, "b.obj")
	assert.Contains(t, out, "  Volume: 2.0000\n")

	out, err = execute(t, "history", "--config", configFile, "--json")
	require.NoError(t, err)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 2)
}

func TestSampleBox(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "box.obj")

	_, err := execute(t, "sample", "box", "--x", "4", "--y", "2", "--z", "1", "--cells", "24", "-o", obj)
	require.NoError(t, err)

	m, err := mesh.ParseFile(obj)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())

	size := m.BoundingBox().Size()
	assert.InDelta(t, 4, size.X, 0.5)
	assert.InDelta(t, 2, size.Y, 0.5)
	assert.InDelta(t, 1, size.Z, 0.5)

	out, err := execute(t, "info", obj)
	require.NoError(t, err)
	assert.Contains(t, out, "File: "+obj)
	assert.Contains(t, out, "Local Density:")
	assert.Contains(t, out, "Center: (")
}

func TestSampleCylinderToStdout(t *testing.T) {
	out, err := execute(t, "sample", "cylinder", "--height", "6", "--radius", "2", "--cells", "16")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# objfeat sample: cylinder h=6 r=2\n"))

	m, err := mesh.ParseString(out)
	require.NoError(t, err)
	assert.False(t, m.IsEmpty())
}

func TestSampleBoxRejectsBadSize(t *testing.T) {
	_, err := execute(t, "sample", "box", "--x", "-1")
	assert.ErrorContains(t, err, "must be positive")
}

func TestSampleFlagsDoNotCarryOverBetweenRuns(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.obj")
	second := filepath.Join(dir, "second.obj")

	_, err := execute(t, "sample", "box", "--x", "-1")
	require.Error(t, err)

	_, err = execute(t, "sample", "box", "--x", "6", "--cells", "12", "-o", first)
	require.NoError(t, err)

	// Only --cells and -o are given, so every size is back at 10.
	_, err = execute(t, "sample", "box", "--cells", "12", "-o", second)
	require.NoError(t, err)

	sizes := make([]float64, 0, 2)
	for _, path := range []string{first, second} {
		m, err := mesh.ParseFile(path)
		require.NoError(t, err)
		sizes = append(sizes, m.BoundingBox().Size().X)
	}
	assert.InDelta(t, 6, sizes[0], 1)
	assert.InDelta(t, 10, sizes[1], 1)
}

func TestCommandTreeHasNoSliceFlags(t *testing.T) {
	var visit func(c *cobra.Command)
	visit = func(c *cobra.Command) {
		check := func(f *pflag.Flag) {
			_, ok := f.Value.(pflag.SliceValue)
			assert.False(t, ok, "--%s of %q", f.Name, c.CommandPath())
		}
		c.Flags().VisitAll(check)
		c.PersistentFlags().VisitAll(check)
		for _, sub := range c.Commands() {
			visit(sub)
		}
	}
	visit(rootCmd)
}

func TestConfigErrorsAbortCommand(t *testing.T) {
	configFile := writeFile(t, t.TempDir(), "objfeat.yaml", "watch:\n  debounce: later\n")

	_, err := execute(t, "history", "--config", configFile)
	assert.ErrorContains(t, err, "watch.debounce")
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "objfeat")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestSampleBoxAsSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.stl")

	_, err := execute(t, "sample", "box", "--x", "2", "--y", "2", "--z", "2", "--cells", "12", "-o", path)
	require.NoError(t, err)

	out, err := execute(t, "vector", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), ","), 20)
}

func TestEdges(t *testing.T) {
	obj := writeFile(t, t.TempDir(), "cube.obj", cubeOBJ)

	out, err := execute(t, "edges", "--longest", "-n", "3", obj)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 3 Longest Edges\n")
	assert.Contains(t, out, "Total edges in model: 12\n")
	assert.Contains(t, out, "Avg edge length: 1.000000 units\n")

	out, err = execute(t, "edges", "--min", "2", "--max", "3", obj)
	require.NoError(t, err)
	assert.Contains(t, out, "No edges found matching the criteria.")
}
