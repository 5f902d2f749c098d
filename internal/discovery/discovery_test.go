package discovery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvto/internal/testutil"
	"github.com/leapstack-labs/csvto/pkg/core"
)

func locations(sources []core.InputSource) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.Location
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.csv", "x\n1\n")
	testutil.WriteFile(t, dir, "A.CSV", "x\n1\n")
	testutil.WriteFile(t, dir, "c.csv.gz", "")
	testutil.WriteFile(t, dir, "notes.txt", "hello")
	testutil.WriteFile(t, dir, "load.sh", "#!/bin/sh")
	testutil.WriteFile(t, filepath.Join(dir, "nested"), "deep.csv", "x\n1\n")

	sources, err := Discover(Options{Dirs: []string{dir}, Extension: "csv", HasHeaders: true}, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "A.CSV"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "c.csv.gz"),
	}, locations(sources))
	for _, s := range sources {
		assert.True(t, s.HasHeaders)
	}
	assert.Equal(t, int64(4), sources[1].SizeBytes)
}

func TestDiscover_ExtensionOverride(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.csv", "x\n")
	testutil.WriteFile(t, dir, "b.tsv", "x\n")
	testutil.WriteFile(t, dir, "run.sh", "")

	sources, err := Discover(Options{Dirs: []string{dir}, Extension: ".TSV"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.tsv")}, locations(sources))

	sources, err = Discover(Options{Dirs: []string{dir}, Extension: "sh"}, nil)
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestDiscover_FilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.csv", "x\n1\n")
	testutil.WriteFile(t, dir, "b.csv", "x\n1\n")
	missing := filepath.Join(dir, "missing.csv")

	sources, err := Discover(Options{
		Files: []string{missing, a},
		Dirs:  []string{dir},
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, []string{missing, a, filepath.Join(dir, "b.csv")}, locations(sources))
	assert.Zero(t, sources[0].SizeBytes)
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "a.csv", "x\n")

	_, err := Discover(Options{Dirs: []string{filepath.Join(dir, "nope")}}, nil)
	assert.Error(t, err)

	_, err = Discover(Options{Dirs: []string{file}}, nil)
	var usageErr *core.UsageError
	assert.ErrorAs(t, err, &usageErr)

	_, err = Discover(Options{Files: []string{dir}}, nil)
	assert.ErrorAs(t, err, &usageErr)
}

func TestDiscover_Empty(t *testing.T) {
	sources, err := Discover(Options{}, nil)
	require.NoError(t, err)
	assert.Empty(t, sources)
}
