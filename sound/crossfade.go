package sound

import (
	"fmt"

	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
)

// DefaultFadeSeconds is the length of every crossfade leg.
const DefaultFadeSeconds = 1.0

// Phase is the crossfade state of one slot.
type Phase int

const (
	Idle Phase = iota
	FadingOutToSilence
	FadingOutToSwap
	FadingInReplacement
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FadingOutToSilence:
		return "fading_out_to_silence"
	case FadingOutToSwap:
		return "fading_out_to_swap"
	case FadingInReplacement:
		return "fading_in_replacement"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// transition is the in-flight request of a slot.
type transition struct {
	phase  Phase
	target Song
	// resume un-pauses and fades the ambient track back in once this slot is
	// silent.
	resume bool
}

func fadeOutPhase(target Song) Phase {
	if target == None {
		return FadingOutToSilence
	}
	return FadingOutToSwap
}

// Crossfader manages the ambient and foreground music slots. Fades are
// completed by Poll, which it installs in the secondary callback slot while
// any transition is in flight and removes once both slots are idle.
//
// Completion is decided by reading the mixer volume (<= 0), never by elapsed
// time, so a slow frame rate only delays the swap.
type Crossfader struct {
	mixer   Mixer
	songs   *Table
	poller  *engine.Slot
	fade    float64
	tracks  [slotCount]*Track
	pending [slotCount]*transition
	log     zerolog.Logger
}

type CrossfaderOption func(*Crossfader)

// WithFadeSeconds sets the fade length. Negative values panic.
func WithFadeSeconds(s float64) CrossfaderOption {
	if s < 0 {
		panic(fmt.Sprintf("sound: negative fade duration %v", s))
	}
	return func(c *Crossfader) { c.fade = s }
}

func WithLogger(l zerolog.Logger) CrossfaderOption {
	return func(c *Crossfader) { c.log = l }
}

func NewCrossfader(mixer Mixer, songs *Table, poller *engine.Slot, opts ...CrossfaderOption) *Crossfader {
	c := &Crossfader{
		mixer:  mixer,
		songs:  songs,
		poller: poller,
		fade:   DefaultFadeSeconds,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFadeSeconds changes the length of fades started from now on. Negative
// values panic.
func (c *Crossfader) SetFadeSeconds(s float64) {
	WithFadeSeconds(s)(c)
}

// Phase reports the state of slot s.
func (c *Crossfader) Phase(s Slot) Phase {
	if tr := c.pending[s]; tr != nil {
		return tr.phase
	}
	return Idle
}

// Current returns the track occupying slot s, or nil.
func (c *Crossfader) Current(s Slot) *Track {
	return c.tracks[s]
}

// Busy reports whether any slot has a transition in flight.
func (c *Crossfader) Busy() bool {
	for _, tr := range c.pending {
		if tr != nil {
			return true
		}
	}
	return false
}

// SetImmediate replaces the ambient track without fading. While a foreground
// track is active the new ambient track is held paused and silent.
func (c *Crossfader) SetImmediate(song Song) error {
	c.pending[Ambient] = nil
	c.release(Ambient)
	if !c.Busy() {
		c.disarm()
	}
	return c.startInto(Ambient, song)
}

// SetWithFade changes the ambient song through a fade-out. Requesting the
// song that is already playing does nothing; a request arriving during a
// fade-out only changes what happens when that fade completes.
func (c *Crossfader) SetWithFade(song Song) error {
	cur := c.tracks[Ambient]
	tr := c.pending[Ambient]

	if tr != nil && tr.phase != FadingInReplacement {
		tr.target = song
		tr.phase = fadeOutPhase(song)
		c.log.Debug().Str("song", string(song)).Stringer("phase", tr.phase).Msg("retarget fade")
		return nil
	}
	if cur != nil && cur.Song == song {
		return nil
	}
	if cur == nil || c.tracks[Foreground] != nil {
		return c.SetImmediate(song)
	}

	c.fadeOut(Ambient, &transition{phase: fadeOutPhase(song), target: song})
	return nil
}

// SetForeground pauses and silences the ambient track, keeping its position,
// and starts song at full volume. An ambient fade in flight is settled first.
// The ambient track is left alone when song cannot be started. Passing None
// releases the foreground track at once and fades the ambient track back in.
func (c *Crossfader) SetForeground(song Song) error {
	if song == None {
		c.dropForeground()
		return nil
	}
	t, err := c.songs.NewTrack(song)
	if err != nil {
		return err
	}

	c.settleAmbient()
	h, err := c.mixer.PlayBackground(t)
	if err != nil {
		if !c.Busy() {
			c.disarm()
		}
		return err
	}
	t.Handle = h

	c.pending[Foreground] = nil
	c.release(Foreground)
	c.tracks[Foreground] = t
	if amb := c.tracks[Ambient]; amb != nil {
		c.hold(amb)
	}
	if c.Busy() {
		c.arm()
	} else {
		c.disarm()
	}
	c.log.Debug().Stringer("slot", Foreground).Stringer("track", t).Msg("started")
	return nil
}

func (c *Crossfader) dropForeground() {
	if c.tracks[Foreground] == nil {
		return
	}
	c.pending[Foreground] = nil
	c.release(Foreground)
	c.resumeAmbient()
	if c.Busy() {
		c.arm()
	} else {
		c.disarm()
	}
}

// FadeForegroundToAmbient fades the foreground track out. Once silent it is
// released and the ambient track, if any, resumes and fades back in.
func (c *Crossfader) FadeForegroundToAmbient() {
	if c.tracks[Foreground] == nil || c.pending[Foreground] != nil {
		return
	}
	c.fadeOut(Foreground, &transition{phase: FadingOutToSilence, resume: true})
}

// Poll advances every in-flight transition once. It is meant to run from the
// secondary callback slot.
func (c *Crossfader) Poll() {
	for s := Ambient; s < slotCount; s++ {
		if tr := c.pending[s]; tr != nil {
			c.step(s, tr)
		}
	}
	if !c.Busy() {
		c.disarm()
	}
}

func (c *Crossfader) step(s Slot, tr *transition) {
	t := c.tracks[s]
	switch tr.phase {
	case FadingOutToSilence, FadingOutToSwap:
		if t != nil && c.mixer.Volume(t.Handle) > 0 {
			return
		}
		c.pending[s] = nil
		c.release(s)
		if tr.phase == FadingOutToSwap {
			if err := c.startInto(s, tr.target); err != nil {
				c.log.Error().Err(err).Str("song", string(tr.target)).Msg("start replacement")
			}
		}
		if tr.resume {
			c.resumeAmbient()
		}
	case FadingInReplacement:
		if t == nil || c.mixer.Volume(t.Handle) >= 1 {
			c.pending[s] = nil
		}
	default:
		c.pending[s] = nil
	}
}

func (c *Crossfader) fadeOut(s Slot, tr *transition) {
	t := c.tracks[s]
	c.mixer.FadeVolume(t.Handle, 0, c.fade)
	c.mixer.ScheduleStop(t.Handle, c.fade)
	c.pending[s] = tr
	c.log.Debug().Stringer("slot", s).Stringer("track", t).Stringer("phase", tr.phase).Msg("fade out")
	c.arm()
}

func (c *Crossfader) resumeAmbient() {
	amb := c.tracks[Ambient]
	if amb == nil {
		return
	}
	c.mixer.SetPause(amb.Handle, false)
	c.mixer.FadeVolume(amb.Handle, 1, c.fade)
	c.pending[Ambient] = &transition{phase: FadingInReplacement}
}

// settleAmbient applies the terminal action of an ambient transition now.
func (c *Crossfader) settleAmbient() {
	tr := c.pending[Ambient]
	if tr == nil {
		return
	}
	c.pending[Ambient] = nil
	switch tr.phase {
	case FadingOutToSilence:
		c.release(Ambient)
	case FadingOutToSwap:
		c.release(Ambient)
		if err := c.startInto(Ambient, tr.target); err != nil {
			c.log.Error().Err(err).Str("song", string(tr.target)).Msg("start replacement")
		}
	}
}

func (c *Crossfader) startInto(s Slot, song Song) error {
	if song == None {
		return nil
	}
	t, err := c.songs.NewTrack(song)
	if err != nil {
		return err
	}
	h, err := c.mixer.PlayBackground(t)
	if err != nil {
		return err
	}
	t.Handle = h
	c.tracks[s] = t
	if s == Ambient && c.tracks[Foreground] != nil {
		c.hold(t)
	}
	c.log.Debug().Stringer("slot", s).Stringer("track", t).Msg("started")
	return nil
}

func (c *Crossfader) hold(t *Track) {
	c.mixer.SetPause(t.Handle, true)
	c.mixer.SetVolume(t.Handle, 0)
}

func (c *Crossfader) release(s Slot) {
	t := c.tracks[s]
	if t == nil {
		return
	}
	c.mixer.Stop(t.Handle)
	c.tracks[s] = nil
}

func (c *Crossfader) arm() {
	if c.poller != nil {
		c.poller.Set(c.Poll)
	}
}

func (c *Crossfader) disarm() {
	if c.poller != nil {
		c.poller.Clear()
	}
}
