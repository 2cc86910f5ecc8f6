package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLetterbox(t *testing.T) {
	cases := []struct {
		name   string
		window Vec2I
		screen Vec2I
		want   Rect
	}{
		{"exact_fit", Vec2I{720, 480}, Vec2I{240, 160}, Rect{Vec2I{0, 0}, Vec2I{720, 480}}},
		{"pillarbox", Vec2I{1000, 480}, Vec2I{240, 160}, Rect{Vec2I{140, 0}, Vec2I{860, 480}}},
		{"letterbox", Vec2I{720, 600}, Vec2I{240, 160}, Rect{Vec2I{0, 60}, Vec2I{720, 540}}},
		{"degenerate_screen", Vec2I{640, 480}, Vec2I{0, 0}, Rect{Vec2I{0, 0}, Vec2I{640, 480}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Letterbox(c.window, c.screen))
		})
	}
}

func TestRectPoint(t *testing.T) {
	r := RectFromSize(Vec2I{10, 20}, Vec2I{100, 50})
	require.Equal(t, Vec2I{10, 20}, r.Point(AnchorTopLeft))
	require.Equal(t, Vec2I{60, 45}, r.Point(AnchorCenter))
	require.Equal(t, Vec2I{110, 70}, r.Point(AnchorBottomRight))
	require.Equal(t, Vec2I{60, 70}, r.Point(AnchorBottom))
	require.True(t, r.Contains(Vec2I{10, 20}))
	require.False(t, r.Contains(Vec2I{110, 70}))
}

func TestRectPointPanicsOnUnknownAnchor(t *testing.T) {
	r := RectFromSize(Vec2I{}, Vec2I{1, 1})
	require.Panics(t, func() { r.Point(Anchor(42)) })
}
