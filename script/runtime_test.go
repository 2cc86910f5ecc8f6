package script

import (
	"errors"
	"testing"

	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/input"
	"github.com/milk9111/frameloop/sound"
	"github.com/stretchr/testify/require"
)

type fakeMusic struct {
	calls []string
	err   error
}

func (m *fakeMusic) SetImmediate(s sound.Song) error {
	m.calls = append(m.calls, "now:"+string(s))
	return m.err
}

func (m *fakeMusic) SetWithFade(s sound.Song) error {
	m.calls = append(m.calls, "fade:"+string(s))
	return m.err
}

func (m *fakeMusic) SetForeground(s sound.Song) error {
	m.calls = append(m.calls, "fg:"+string(s))
	return m.err
}

func (m *fakeMusic) FadeForegroundToAmbient() { m.calls = append(m.calls, "end") }

func (m *fakeMusic) Phase(s sound.Slot) sound.Phase {
	if s == sound.Foreground {
		return sound.FadingOutToSilence
	}
	return sound.Idle
}

type fakeKeys struct {
	just map[input.Key]bool
}

func (k *fakeKeys) IsJustPressed(key input.Key) bool { return k.just[key] }
func (k *fakeKeys) IsPressed(key input.Key) bool     { return k.just[key] }

const jukebox = `
initial_state := "overworld"

states := {
	overworld: func(fl, data) {
		if is_undefined(data.ticks) {
			data.ticks = 0
			fl.music("town")
		}
		data.ticks += 1
		if fl.just_pressed("a") {
			fl.battle("battle")
			fl.next("battle")
		}
		if fl.just_pressed("select") {
			fl.quit()
		}
	},
	battle: func(fl, data) {
		data.fg_phase = fl.phase("foreground")
		if fl.just_pressed("b") {
			fl.end_battle()
			fl.next("overworld")
		}
	}
}
`

func newTestRuntime(t *testing.T, src string) (*Runtime, *engine.Scheduler, *fakeMusic, *fakeKeys) {
	t.Helper()
	sched := engine.NewScheduler()
	music := &fakeMusic{}
	keys := &fakeKeys{just: map[input.Key]bool{}}
	rt, err := New("jukebox.tengo", []byte(src), sched, music, keys)
	require.NoError(t, err)
	return rt, sched, music, keys
}

func TestRuntimeStatesAndNext(t *testing.T) {
	rt, sched, music, keys := newTestRuntime(t, jukebox)
	require.Equal(t, "overworld", rt.Initial())

	rt.Start()
	require.True(t, sched.Primary.RunIfPresent())
	require.True(t, sched.Primary.RunIfPresent())
	require.Equal(t, []string{"fade:town"}, music.calls)
	require.Equal(t, int64(2), rt.Data()["ticks"])

	keys.just[input.A] = true
	sched.Primary.RunIfPresent()
	require.Equal(t, "overworld", rt.Current())
	require.Equal(t, []string{"fade:town", "fg:battle"}, music.calls)

	keys.just[input.A] = false
	sched.Primary.RunIfPresent()
	require.Equal(t, "battle", rt.Current())
	require.Equal(t, "fading_out_to_silence", rt.Data()["fg_phase"])

	keys.just[input.B] = true
	sched.Primary.RunIfPresent()
	require.Equal(t, "end", music.calls[len(music.calls)-1])
	keys.just[input.B] = false
	sched.Primary.RunIfPresent()
	require.Equal(t, "overworld", rt.Current())
	require.Zero(t, rt.Failures())
}

func TestRuntimeQuit(t *testing.T) {
	rt, sched, _, keys := newTestRuntime(t, jukebox)
	rt.Start()
	keys.just[input.Select] = true
	sched.Primary.RunIfPresent()
	require.True(t, sched.Quit.Requested())
}

func TestRuntimeInitialDefaultsToFirstState(t *testing.T) {
	rt, _, _, _ := newTestRuntime(t, `states := {b: func(fl, d) {}, a: func(fl, d) {}}`)
	require.Equal(t, "a", rt.Initial())
}

func TestRuntimeCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"syntax", `states := {`, nil},
		{"no_states", `states := {}`, ErrNoStates},
		{"bad_initial", "initial_state := \"title\"\nstates := {a: func(fl, d) {}}", ErrUnknownState},
		{"top_level_failure", "x := 1 / 0\nstates := {a: func(fl, d) {}}", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New("bad.tengo", []byte(c.src), engine.NewScheduler(), nil, nil)
			require.Error(t, err)
			require.Contains(t, err.Error(), "bad.tengo")
			if c.want != nil {
				require.ErrorIs(t, err, c.want)
			}
		})
	}

	_, err := New("nil.tengo", []byte(jukebox), nil, nil, nil)
	require.Error(t, err)
}

func TestRuntimeRunUnknownState(t *testing.T) {
	rt, sched, _, _ := newTestRuntime(t, jukebox)
	require.ErrorIs(t, rt.Run("credits"), ErrUnknownState)

	sched.Primary.Set(rt.Callback("credits"))
	sched.Primary.RunIfPresent()
	require.Equal(t, 1, rt.Failures())
}

func TestRuntimeSongErrorsReachScript(t *testing.T) {
	sched := engine.NewScheduler()
	music := &fakeMusic{err: errors.New("boom")}
	rt, err := New("err.tengo", []byte(`states := {a: func(fl, d) { d.result = is_error(fl.music("x")) }}`), sched, music, nil)
	require.NoError(t, err)
	require.NoError(t, rt.Run("a"))
	require.Equal(t, true, rt.Data()["result"])
}

func TestRuntimeReload(t *testing.T) {
	rt, sched, _, _ := newTestRuntime(t, jukebox)
	rt.Start()
	sched.Primary.RunIfPresent()

	require.NoError(t, rt.Reload([]byte(`states := {overworld: func(fl, d) { d.reloaded = true }}`)))
	sched.Primary.RunIfPresent()
	require.Equal(t, true, rt.Data()["reloaded"])
	require.Equal(t, int64(1), rt.Data()["ticks"])

	require.Error(t, rt.Reload([]byte(`states := {`)))
	sched.Primary.RunIfPresent()
	require.Zero(t, rt.Failures())

	require.NoError(t, rt.Reload([]byte(`states := {title: func(fl, d) { d.title = true }}`)))
	sched.Primary.RunIfPresent()
	require.Equal(t, "title", rt.Current())
	require.Equal(t, true, rt.Data()["title"])
}

func TestRuntimeGoto(t *testing.T) {
	rt, sched, _, _ := newTestRuntime(t, jukebox)
	require.ErrorIs(t, rt.Goto("credits"), ErrUnknownState)
	require.False(t, sched.Primary.Present())

	require.NoError(t, rt.Goto("battle"))
	sched.Primary.RunIfPresent()
	require.Equal(t, "battle", rt.Current())
}
