package sound

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSong = errors.New("sound: unknown song")
	ErrMixerClosed = errors.New("sound: mixer not initialized")
)

// Song is the logical identifier of a piece of music.
type Song string

// None requests silence.
const None Song = ""

// SongInfo is how a song is played: the resource it streams from and the
// offset in seconds the loop returns to.
type SongInfo struct {
	Resource  string  `yaml:"resource"`
	LoopPoint float64 `yaml:"loop_point"`
}

type tableFile struct {
	Songs map[string]SongInfo `yaml:"songs"`
}

// Table maps songs to their playback parameters.
type Table struct {
	songs map[Song]SongInfo
}

func NewTable(songs map[Song]SongInfo) *Table {
	t := &Table{songs: make(map[Song]SongInfo, len(songs))}
	for s, info := range songs {
		t.songs[s] = info
	}
	return t
}

// ParseTable reads a YAML song table.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sound: unmarshal song table: %w", err)
	}
	t := &Table{songs: make(map[Song]SongInfo, len(f.Songs))}
	for name, info := range f.Songs {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("sound: song table: empty song name")
		}
		if strings.TrimSpace(info.Resource) == "" {
			return nil, fmt.Errorf("sound: song %q: missing resource", name)
		}
		if info.LoopPoint < 0 {
			return nil, fmt.Errorf("sound: song %q: negative loop point %v", name, info.LoopPoint)
		}
		t.songs[Song(name)] = info
	}
	return t, nil
}

func (t *Table) Lookup(s Song) (SongInfo, error) {
	if t == nil {
		return SongInfo{}, fmt.Errorf("%w: %q", ErrUnknownSong, s)
	}
	info, ok := t.songs[s]
	if !ok {
		return SongInfo{}, fmt.Errorf("%w: %q", ErrUnknownSong, s)
	}
	return info, nil
}

// Songs lists the known songs in name order.
func (t *Table) Songs() []Song {
	if t == nil {
		return nil
	}
	out := make([]Song, 0, len(t.songs))
	for s := range t.songs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewTrack derives a playable track for s. The handle is assigned when the
// mixer starts it.
func (t *Table) NewTrack(s Song) (*Track, error) {
	info, err := t.Lookup(s)
	if err != nil {
		return nil, err
	}
	return &Track{Song: s, Resource: info.Resource, LoopPoint: info.LoopPoint}, nil
}
