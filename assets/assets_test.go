package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/milk9111/frameloop/sound"
	"github.com/stretchr/testify/require"
)

func TestSongTableParses(t *testing.T) {
	table, err := sound.ParseTable(SongTable())
	require.NoError(t, err)
	require.Contains(t, table.Songs(), sound.Song("town1"))

	info, err := table.Lookup("cave1")
	require.NoError(t, err)
	require.Equal(t, "Sound/BGM/Cave1.ogg", info.Resource)
	require.InDelta(t, 3.75, info.LoopPoint, 1e-9)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"", DefaultScript, "scripts/jukebox.tengo", "assets/scripts/jukebox.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		require.Contains(t, string(data), "states :=")
	}

	path := filepath.Join(t.TempDir(), "custom.tengo")
	require.NoError(t, os.WriteFile(path, []byte("states := {}"), 0o644))
	data, err := LoadScript(path)
	require.NoError(t, err)
	require.Equal(t, "states := {}", string(data))

	_, err = LoadScript("missing.tengo")
	require.Error(t, err)
}

func TestLoaderResolvesNames(t *testing.T) {
	l := NewLoaderFS(fstest.MapFS{
		"Sound/BGM/Town1.ogg": {Data: []byte("ogg")},
	})
	cases := []string{"Sound/BGM/Town1.ogg", "Sound.BGM.Town1.ogg", "/Sound/BGM/Town1.ogg", "Sound/BGM/../BGM/Town1.ogg"}
	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := l.ReadFile(name)
			require.NoError(t, err)
			require.Equal(t, "ogg", string(b))
			require.True(t, l.Exists(name))
		})
	}

	_, err := l.ReadFile("Sound/BGM/Cave1.ogg")
	require.Error(t, err)
	_, err = l.ReadFile(" ")
	require.Error(t, err)
	require.False(t, l.Exists(""))
}

func TestLoaderFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Sound", "BGM"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Sound", "BGM", "Route1.ogg"), []byte("x"), 0o644))

	l := NewLoader(dir)
	require.Equal(t, dir, l.Root())
	b, err := l.ReadFile("Sound/BGM/Route1.ogg")
	require.NoError(t, err)
	require.Equal(t, "x", string(b))
}
