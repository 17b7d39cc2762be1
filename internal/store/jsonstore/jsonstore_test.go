package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aznadocs/docsuneed/internal/model"
)

func testFiles(t *testing.T) (*Files, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, zerolog.Nop()), dir
}

func TestLoadTreeFirstRunUsesSeed(t *testing.T) {
	f, _ := testFiles(t)
	assert.Equal(t, model.SeedServices(), f.LoadTree())
}

func TestTreeRoundTrip(t *testing.T) {
	f, _ := testFiles(t)
	tree := model.SeedServices()

	require.NoError(t, f.SaveTree(tree))
	got := f.LoadTree()

	assert.Equal(t, tree, got, "same services, same nested sections/items, same order")
}

func TestLoadTreeCorruptRecordFallsBack(t *testing.T) {
	f, dir := testFiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "services.json"), []byte("{not json"), 0o644))

	assert.Equal(t, model.SeedServices(), f.LoadTree())
}

func TestLoadTreeInvalidShapeFallsBack(t *testing.T) {
	f, dir := testFiles(t)
	// parses fine but a service without an id is not a usable record
	raw := `[{"id":"","name":"Broken","iconName":"FileText","sections":[]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "services.json"), []byte(raw), 0o644))

	assert.Equal(t, model.SeedServices(), f.LoadTree())
}

func TestLoadTreeEmptyRecordStaysEmpty(t *testing.T) {
	f, _ := testFiles(t)
	require.NoError(t, f.SaveTree([]model.Service{}))

	// a deliberately emptied tree must not resurrect the seed
	assert.Empty(t, f.LoadTree())
}

func TestCheckedSidecarRoundTrip(t *testing.T) {
	f, _ := testFiles(t)
	assert.Empty(t, f.LoadChecked())

	checked := model.CheckedState{"item-birth-cert": true, "item-long-gone": true}
	require.NoError(t, f.SaveChecked(checked))
	assert.Equal(t, checked, f.LoadChecked())
}

func TestCheckedSidecarCorruptStartsEmpty(t *testing.T) {
	f, dir := testFiles(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "checked.json"), []byte("{not json"), 0o644))

	got := f.LoadChecked()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCheckedSidecarIsSeparateFromTree(t *testing.T) {
	f, dir := testFiles(t)
	require.NoError(t, f.SaveTree(model.SeedServices()))
	require.NoError(t, f.SaveChecked(model.CheckedState{"item-pan": true}))

	b, err := os.ReadFile(filepath.Join(dir, "services.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "item-pan\": true", "tree record never holds completion entries")

	_, err = os.Stat(filepath.Join(dir, "checked.json"))
	assert.NoError(t, err)
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".docsuneed")
	f := New(dir, zerolog.Nop())

	require.NoError(t, f.SaveTree(model.SeedServices()))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
