package platform

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/frameloop/sound"
)

// bytesPerFrame is one 16-bit stereo sample frame of ebiten's audio format.
const bytesPerFrame = 4

// Resources reads resource files by name.
type Resources interface {
	ReadFile(resource string) ([]byte, error)
}

// AudioBackend decodes tracks into looping ebiten audio players.
type AudioBackend struct {
	sampleRate int
	volume     float64
	resources  Resources
	ctx        *audio.Context
}

func NewAudioBackend(sampleRate int, volume float64, resources Resources) *AudioBackend {
	return &AudioBackend{sampleRate: sampleRate, volume: volume, resources: resources}
}

var _ sound.Backend = (*AudioBackend)(nil)

func (b *AudioBackend) Open() error {
	if b.ctx != nil {
		return nil
	}
	if ctx := audio.CurrentContext(); ctx != nil {
		if ctx.SampleRate() != b.sampleRate {
			return fmt.Errorf("platform: audio context already running at %d Hz", ctx.SampleRate())
		}
		b.ctx = ctx
		return nil
	}
	b.ctx = audio.NewContext(b.sampleRate)
	return nil
}

// Close keeps the context; ebiten allows only one per process.
func (b *AudioBackend) Close() error {
	return nil
}

func (b *AudioBackend) Load(t *sound.Track) (sound.Stream, error) {
	if b.ctx == nil {
		return nil, sound.ErrMixerClosed
	}
	data, err := b.resources.ReadFile(t.Resource)
	if err != nil {
		return nil, err
	}
	src, length, err := b.decode(t.Resource, data)
	if err != nil {
		return nil, err
	}

	intro := alignFrame(int64(t.LoopPoint * float64(b.sampleRate) * bytesPerFrame))
	if intro >= length {
		intro = 0
	}
	loop := audio.NewInfiniteLoopWithIntro(src, intro, length-intro)
	player, err := b.ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("platform: player for %s: %w", t.Resource, err)
	}
	return &playerStream{player: player, master: b.volume}, nil
}

func (b *AudioBackend) decode(name string, data []byte) (io.ReadSeeker, int64, error) {
	r := bytes.NewReader(data)
	switch strings.ToLower(path.Ext(name)) {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(b.sampleRate, r)
		if err != nil {
			return nil, 0, fmt.Errorf("platform: decode ogg %q: %w", name, err)
		}
		return s, s.Length(), nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(b.sampleRate, r)
		if err != nil {
			return nil, 0, fmt.Errorf("platform: decode wav %q: %w", name, err)
		}
		return s, s.Length(), nil
	default:
		// Raw PCM already in ebiten's format.
		return r, int64(len(data)), nil
	}
}

func alignFrame(n int64) int64 {
	return n - n%bytesPerFrame
}

// playerStream adapts an ebiten player to sound.Stream, applying the master
// volume.
type playerStream struct {
	player *audio.Player
	master float64
}

func (p *playerStream) Play()               { p.player.Play() }
func (p *playerStream) Pause()              { p.player.Pause() }
func (p *playerStream) SetVolume(v float64) { p.player.SetVolume(v * p.master) }
func (p *playerStream) Close() error        { return p.player.Close() }
