package sound

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	data := []byte(`
songs:
  town:
    resource: Sound/BGM/Town1.ogg
    loop_point: 3.25
  cave:
    resource: Sound/BGM/Cave.wav
`)
	table, err := ParseTable(data)
	require.NoError(t, err)
	require.Equal(t, []Song{"cave", "town"}, table.Songs())

	info, err := table.Lookup("town")
	require.NoError(t, err)
	require.Equal(t, "Sound/BGM/Town1.ogg", info.Resource)
	require.InDelta(t, 3.25, info.LoopPoint, 1e-9)
}

func TestParseTableRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad_yaml", "songs: [1, 2"},
		{"missing_resource", "songs:\n  town:\n    loop_point: 1\n"},
		{"negative_loop", "songs:\n  town:\n    resource: a.ogg\n    loop_point: -1\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseTable([]byte(c.data))
			require.Error(t, err)
		})
	}
}

func TestNewTrackUnknownSong(t *testing.T) {
	_, err := testTable().NewTrack("credits")
	require.ErrorIs(t, err, ErrUnknownSong)

	var nilTable *Table
	_, err = nilTable.Lookup("town")
	require.ErrorIs(t, err, ErrUnknownSong)
}

func TestTrackString(t *testing.T) {
	var tr *Track
	require.Equal(t, "<none>", tr.String())
	require.Equal(t, "town#3", (&Track{Song: "town", Handle: 3}).String())
}
