package engine

import "fmt"

type Vec2I struct {
	X, Y int
}

func (v Vec2I) Add(o Vec2I) Vec2I      { return Vec2I{v.X + o.X, v.Y + o.Y} }
func (v Vec2I) Sub(o Vec2I) Vec2I      { return Vec2I{v.X - o.X, v.Y - o.Y} }
func (v Vec2I) Scale(s int) Vec2I      { return Vec2I{v.X * s, v.Y * s} }
func (v Vec2I) Positive() bool         { return v.X > 0 && v.Y > 0 }
func (v Vec2I) String() string         { return fmt.Sprintf("%dx%d", v.X, v.Y) }
func (v Vec2I) scalef(f float64) Vec2I { return Vec2I{int(float64(v.X) * f), int(float64(v.Y) * f)} }

// Rect is inclusive of TopLeft and exclusive of BottomRight.
type Rect struct {
	TopLeft     Vec2I
	BottomRight Vec2I
}

func RectFromSize(topLeft, size Vec2I) Rect {
	return Rect{TopLeft: topLeft, BottomRight: topLeft.Add(size)}
}

func (r Rect) Size() Vec2I {
	return r.BottomRight.Sub(r.TopLeft)
}

func (r Rect) Contains(p Vec2I) bool {
	return p.X >= r.TopLeft.X && p.Y >= r.TopLeft.Y && p.X < r.BottomRight.X && p.Y < r.BottomRight.Y
}

// Letterbox returns the largest rectangle with the aspect ratio of screen
// that fits inside window, centered.
func Letterbox(window, screen Vec2I) Rect {
	if !screen.Positive() || !window.Positive() {
		return RectFromSize(Vec2I{}, window)
	}
	rx := float64(window.X) / float64(screen.X)
	ry := float64(window.Y) / float64(screen.Y)
	ratio := rx
	if ry < rx {
		ratio = ry
	}
	size := screen.scalef(ratio)
	topLeft := window.Sub(size).scalef(0.5)
	return RectFromSize(topLeft, size)
}

// Anchor names a reference point on a rectangle.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
)

// Point returns the anchor's position in r. An unknown anchor is a
// programming error and panics.
func (r Rect) Point(a Anchor) Vec2I {
	size := r.Size()
	var x, y int
	switch a {
	case AnchorTopLeft, AnchorLeft, AnchorBottomLeft:
		x = r.TopLeft.X
	case AnchorTop, AnchorCenter, AnchorBottom:
		x = r.TopLeft.X + size.X/2
	case AnchorTopRight, AnchorRight, AnchorBottomRight:
		x = r.BottomRight.X
	default:
		panic(fmt.Sprintf("engine: unknown anchor %d", int(a)))
	}
	switch a {
	case AnchorTopLeft, AnchorTop, AnchorTopRight:
		y = r.TopLeft.Y
	case AnchorLeft, AnchorCenter, AnchorRight:
		y = r.TopLeft.Y + size.Y/2
	default:
		y = r.BottomRight.Y
	}
	return Vec2I{X: x, Y: y}
}
