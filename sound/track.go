package sound

import "fmt"

// Handle identifies a voice in the mixer. Zero is never issued.
type Handle uint32

// Track is a playing stream for one song.
type Track struct {
	Song      Song
	Resource  string
	LoopPoint float64
	Handle    Handle
}

func (t *Track) String() string {
	if t == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s#%d", t.Song, t.Handle)
}

// Slot is one of the two conceptual music channels.
type Slot int

const (
	// Ambient is the overworld music.
	Ambient Slot = iota
	// Foreground temporarily overrides Ambient, e.g. battle music.
	Foreground
	slotCount
)

func (s Slot) String() string {
	switch s {
	case Ambient:
		return "ambient"
	case Foreground:
		return "foreground"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}
