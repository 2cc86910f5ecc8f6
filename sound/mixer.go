package sound

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/milk9111/frameloop/common"
	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
)

// Mixer is the audio collaborator. Fades and scheduled stops are advanced by
// Update once per iteration and are also evaluated whenever Volume is read.
type Mixer interface {
	Init() error
	Deinit() error
	Update()
	PlayBackground(t *Track) (Handle, error)
	Stop(h Handle)
	ScheduleStop(h Handle, afterSeconds float64)
	FadeVolume(h Handle, target, overSeconds float64)
	Volume(h Handle) float64
	SetVolume(h Handle, v float64)
	SetPause(h Handle, paused bool)
}

// Stream is one decoded, looping playback stream of a backend.
type Stream interface {
	Play()
	Pause()
	SetVolume(v float64)
	Close() error
}

// Backend opens the device and decodes tracks into streams.
type Backend interface {
	Open() error
	Close() error
	Load(t *Track) (Stream, error)
}

type voice struct {
	track   *Track
	stream  Stream
	volume  float64
	applied float64

	fading    bool
	fadeFrom  float64
	fadeTo    float64
	fadeStart time.Time
	fadeDur   time.Duration

	stopPending bool
	stopAt      time.Time

	paused bool
	halted bool
}

func (v *voice) advance(now time.Time) {
	if v.fading {
		elapsed := now.Sub(v.fadeStart)
		if elapsed >= v.fadeDur {
			v.volume = v.fadeTo
			v.fading = false
		} else if elapsed > 0 {
			v.volume = common.Lerp(v.fadeFrom, v.fadeTo, elapsed.Seconds()/v.fadeDur.Seconds())
		}
	}
	if v.stopPending && !now.Before(v.stopAt) {
		v.stopPending = false
		v.fading = false
		v.halted = true
		v.volume = 0
		v.stream.Pause()
	}
	if v.volume != v.applied {
		v.stream.SetVolume(v.volume)
		v.applied = v.volume
	}
}

// VoiceMixer implements Mixer on top of a Backend. A scheduled stop halts and
// silences the stream but keeps the handle valid until Stop, so a poller
// checking Volume always observes the end of a fade before the handle goes
// away.
type VoiceMixer struct {
	backend Backend
	clock   clock.Clock
	voices  map[Handle]*voice
	next    Handle
	open    bool
	log     zerolog.Logger
}

var _ Mixer = (*VoiceMixer)(nil)

type MixerOption func(*VoiceMixer)

func WithMixerClock(c clock.Clock) MixerOption {
	return func(m *VoiceMixer) { m.clock = c }
}

func WithMixerLogger(l zerolog.Logger) MixerOption {
	return func(m *VoiceMixer) { m.log = l }
}

func NewVoiceMixer(backend Backend, opts ...MixerOption) *VoiceMixer {
	m := &VoiceMixer{
		backend: backend,
		voices:  make(map[Handle]*voice),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = clock.New()
	}
	return m
}

func (m *VoiceMixer) Init() error {
	if m.open {
		return nil
	}
	if err := m.backend.Open(); err != nil {
		return fmt.Errorf("sound: open backend: %w", err)
	}
	m.open = true
	return nil
}

func (m *VoiceMixer) Deinit() error {
	if !m.open {
		return nil
	}
	for h := range m.voices {
		m.Stop(h)
	}
	m.open = false
	if err := m.backend.Close(); err != nil {
		return fmt.Errorf("sound: close backend: %w", err)
	}
	return nil
}

func (m *VoiceMixer) Update() {
	now := m.clock.Now()
	for _, v := range m.voices {
		v.advance(now)
	}
}

// PlayBackground starts t looping at full volume.
func (m *VoiceMixer) PlayBackground(t *Track) (Handle, error) {
	if !m.open {
		return 0, ErrMixerClosed
	}
	stream, err := m.backend.Load(t)
	if err != nil {
		return 0, fmt.Errorf("sound: load %s: %w", t.Resource, err)
	}
	m.next++
	h := m.next
	m.voices[h] = &voice{track: t, stream: stream, volume: 1, applied: 1}
	stream.SetVolume(1)
	stream.Play()
	m.log.Debug().Str("song", string(t.Song)).Uint32("handle", uint32(h)).Msg("play")
	return h, nil
}

func (m *VoiceMixer) Stop(h Handle) {
	v, ok := m.voices[h]
	if !ok {
		return
	}
	delete(m.voices, h)
	v.stream.Pause()
	if err := v.stream.Close(); err != nil {
		m.log.Warn().Err(err).Uint32("handle", uint32(h)).Msg("close stream")
	}
}

func (m *VoiceMixer) ScheduleStop(h Handle, afterSeconds float64) {
	v, ok := m.voices[h]
	if !ok {
		return
	}
	v.stopPending = true
	v.stopAt = m.clock.Now().Add(seconds(afterSeconds))
}

// FadeVolume moves the volume linearly from its current value to target.
func (m *VoiceMixer) FadeVolume(h Handle, target, overSeconds float64) {
	v, ok := m.voices[h]
	if !ok {
		return
	}
	now := m.clock.Now()
	v.advance(now)
	target = common.Clamp01(target)
	if overSeconds <= 0 {
		v.fading = false
		v.volume = target
		v.advance(now)
		return
	}
	v.fading = true
	v.fadeFrom = v.volume
	v.fadeTo = target
	v.fadeStart = now
	v.fadeDur = seconds(overSeconds)
}

// Volume reports the current volume. Unknown handles are silent.
func (m *VoiceMixer) Volume(h Handle) float64 {
	v, ok := m.voices[h]
	if !ok {
		return 0
	}
	v.advance(m.clock.Now())
	return v.volume
}

func (m *VoiceMixer) SetVolume(h Handle, vol float64) {
	v, ok := m.voices[h]
	if !ok {
		return
	}
	v.fading = false
	v.volume = common.Clamp01(vol)
	v.advance(m.clock.Now())
}

func (m *VoiceMixer) SetPause(h Handle, paused bool) {
	v, ok := m.voices[h]
	if !ok || v.paused == paused {
		return
	}
	v.paused = paused
	switch {
	case paused:
		v.stream.Pause()
	case !v.halted:
		v.stream.Play()
	}
}

// Active reports whether h still refers to a voice.
func (m *VoiceMixer) Active(h Handle) bool {
	_, ok := m.voices[h]
	return ok
}

// Paused reports whether h is paused.
func (m *VoiceMixer) Paused(h Handle) bool {
	v, ok := m.voices[h]
	return ok && v.paused
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
