package sound

import "errors"

type fakeStream struct {
	track   *Track
	playing bool
	volume  float64
	closed  bool
}

func (s *fakeStream) Play()               { s.playing = true }
func (s *fakeStream) Pause()              { s.playing = false }
func (s *fakeStream) SetVolume(v float64) { s.volume = v }
func (s *fakeStream) Close() error        { s.closed = true; return nil }

type fakeBackend struct {
	opened  bool
	closed  bool
	loadErr error
	streams []*fakeStream
}

func (b *fakeBackend) Open() error  { b.opened = true; return nil }
func (b *fakeBackend) Close() error { b.closed = true; return nil }

func (b *fakeBackend) Load(t *Track) (Stream, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	s := &fakeStream{track: t}
	b.streams = append(b.streams, s)
	return s, nil
}

// live returns the unclosed streams.
func (b *fakeBackend) live() []*fakeStream {
	var out []*fakeStream
	for _, s := range b.streams {
		if !s.closed {
			out = append(out, s)
		}
	}
	return out
}

var errLoad = errors.New("decode failed")

func testTable() *Table {
	return NewTable(map[Song]SongInfo{
		"town":   {Resource: "Sound/BGM/Town1.ogg", LoopPoint: 2.5},
		"route":  {Resource: "Sound/BGM/Route1.ogg"},
		"battle": {Resource: "Sound/BGM/Battle1.ogg", LoopPoint: 1},
	})
}
