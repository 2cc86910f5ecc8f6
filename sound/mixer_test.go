package sound

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func newTestMixer(t *testing.T) (*VoiceMixer, *fakeBackend, *clock.Mock) {
	t.Helper()
	backend := &fakeBackend{}
	mock := clock.NewMock()
	m := NewVoiceMixer(backend, WithMixerClock(mock))
	require.NoError(t, m.Init())
	return m, backend, mock
}

func TestPlayBackgroundRequiresInit(t *testing.T) {
	m := NewVoiceMixer(&fakeBackend{}, WithMixerClock(clock.NewMock()))
	_, err := m.PlayBackground(&Track{Song: "town"})
	require.ErrorIs(t, err, ErrMixerClosed)
}

func TestPlayBackgroundLoadError(t *testing.T) {
	m, backend, _ := newTestMixer(t)
	backend.loadErr = errLoad
	_, err := m.PlayBackground(&Track{Song: "town", Resource: "x.ogg"})
	require.ErrorIs(t, err, errLoad)
}

func TestFadeVolumeIsLinear(t *testing.T) {
	m, backend, mock := newTestMixer(t)
	h, err := m.PlayBackground(&Track{Song: "town"})
	require.NoError(t, err)
	require.NotZero(t, h)
	require.Equal(t, 1.0, m.Volume(h))

	m.FadeVolume(h, 0, 2)
	mock.Add(500 * time.Millisecond)
	require.InDelta(t, 0.75, m.Volume(h), 1e-9)
	mock.Add(time.Second)
	m.Update()
	require.InDelta(t, 0.25, backend.streams[0].volume, 1e-9)
	mock.Add(5 * time.Second)
	require.Equal(t, 0.0, m.Volume(h))
}

func TestFadeVolumeZeroDurationIsImmediate(t *testing.T) {
	m, _, _ := newTestMixer(t)
	h, _ := m.PlayBackground(&Track{Song: "town"})
	m.FadeVolume(h, 0.4, 0)
	require.InDelta(t, 0.4, m.Volume(h), 1e-9)
	m.FadeVolume(h, 3, 0)
	require.Equal(t, 1.0, m.Volume(h))
}

func TestScheduledStopKeepsHandle(t *testing.T) {
	m, backend, mock := newTestMixer(t)
	h, _ := m.PlayBackground(&Track{Song: "town"})
	m.ScheduleStop(h, 1)

	mock.Add(999 * time.Millisecond)
	m.Update()
	require.True(t, backend.streams[0].playing)

	mock.Add(time.Millisecond)
	m.Update()
	require.False(t, backend.streams[0].playing)
	require.True(t, m.Active(h))
	require.Equal(t, 0.0, m.Volume(h))

	m.Stop(h)
	require.False(t, m.Active(h))
	require.True(t, backend.streams[0].closed)
	require.Equal(t, 0.0, m.Volume(h))
}

func TestSetPause(t *testing.T) {
	m, backend, _ := newTestMixer(t)
	h, _ := m.PlayBackground(&Track{Song: "town"})
	m.SetPause(h, true)
	require.True(t, m.Paused(h))
	require.False(t, backend.streams[0].playing)
	m.SetPause(h, false)
	require.True(t, backend.streams[0].playing)

	// Unknown handles are ignored.
	m.SetPause(99, true)
	m.SetVolume(99, 0.5)
	m.Stop(99)
}

func TestDeinitStopsAll(t *testing.T) {
	m, backend, _ := newTestMixer(t)
	h1, _ := m.PlayBackground(&Track{Song: "town"})
	h2, _ := m.PlayBackground(&Track{Song: "route"})
	require.NotEqual(t, h1, h2)

	require.NoError(t, m.Deinit())
	require.True(t, backend.closed)
	require.Empty(t, backend.live())
	require.NoError(t, m.Deinit())
}
