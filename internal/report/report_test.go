package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomscan-data/pointprep/internal/geom"
	"github.com/roomscan-data/pointprep/internal/scene"
	"github.com/roomscan-data/pointprep/internal/visual"
)

func corpusStore(t *testing.T) *scene.Store {
	t.Helper()
	dir := t.TempDir()
	for i, n := range []int{5, 8} {
		sc := &scene.Scene{Name: "room_" + string(rune('a'+i))}
		for j := 0; j < n; j++ {
			sc.Positions = append(sc.Positions, geom.Vec3{float32(j), 0, 0})
			sc.Colors = append(sc.Colors, geom.Vec3{})
			sc.Labels = append(sc.Labels, int32(j%2))
		}
		require.NoError(t, scene.Save(filepath.Join(dir, sc.Name+scene.FileExt), sc))
	}
	st, err := scene.NewStore(scene.StoreConfig{Dir: dir})
	require.NoError(t, err)
	return st
}

func TestWriteCorpus(t *testing.T) {
	t.Parallel()

	st := corpusStore(t)
	path := filepath.Join(t.TempDir(), "corpus.html")
	require.NoError(t, WriteCorpus(st, visual.PaletteRoomScan(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.True(t, strings.Contains(html, "Points per Scene"))
	assert.True(t, strings.Contains(html, "Points per Class"))
	assert.True(t, strings.Contains(html, "room_a"))
	// label 0 maps to the first palette class
	assert.True(t, strings.Contains(html, "ceiling"))
}

func TestWriteCorpus_BadOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sc := &scene.Scene{Name: "only"}
	sc.Positions = append(sc.Positions, geom.Vec3{})
	sc.Colors = append(sc.Colors, geom.Vec3{})
	sc.Labels = append(sc.Labels, 0)
	require.NoError(t, scene.Save(filepath.Join(dir, "only"+scene.FileExt), sc))

	st, err := scene.NewStore(scene.StoreConfig{Dir: dir})
	require.NoError(t, err)

	err = WriteCorpus(st, visual.PaletteRoomScan(), filepath.Join(dir, "missing", "corpus.html"))
	assert.Error(t, err)
}
