package seesaw

import (
	"math"
	"time"
)

// Rect is an axis-aligned box in container coordinates (y grows downward).
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Overlaps reports whether two boxes touch or intersect.
func Overlaps(a, b Rect) bool {
	return !(a.Bottom() < b.Y ||
		a.Y > b.Bottom() ||
		a.Right() < b.X ||
		a.X > b.Right())
}

// Geometry describes the container the bar lives in and how objects fall.
type Geometry struct {
	ContainerWidth  float64
	ContainerHeight float64
	BarWidth        float64
	BarHeight       float64
	BarTop          float64
	ObjectSize      float64
	FallDistance    float64
	FallDuration    time.Duration
}

func DefaultGeometry() Geometry {
	return Geometry{
		ContainerWidth:  600,
		ContainerHeight: 400,
		BarWidth:        400,
		BarHeight:       10,
		BarTop:          300,
		ObjectSize:      40,
		FallDistance:    400,
		FallDuration:    2 * time.Second,
	}
}

// Pivot is the bottom centre of the bar, the point it rotates around.
func (g Geometry) Pivot() (x, y float64) {
	return g.ContainerWidth / 2, g.BarTop + g.BarHeight
}

// rotate maps a point given relative to the pivot onto container
// coordinates after a clockwise rotation of deg degrees.
func (g Geometry) rotate(dx, dy, deg float64) (x, y float64) {
	px, py := g.Pivot()
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return px + dx*cos - dy*sin, py + dx*sin + dy*cos
}

// BarBounds is the bounding box of the bar tilted by angle degrees.
func (g Geometry) BarBounds(angle float64) Rect {
	half := g.BarWidth / 2
	corners := [4][2]float64{
		{-half, -g.BarHeight}, {half, -g.BarHeight},
		{half, 0}, {-half, 0},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := g.rotate(c[0], c[1], angle)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BarEnds returns the left and right ends of the bar's centre line when
// tilted by angle degrees.
func (g Geometry) BarEnds(angle float64) (x1, y1, x2, y2 float64) {
	half := g.BarWidth / 2
	x1, y1 = g.rotate(-half, -g.BarHeight/2, angle)
	x2, y2 = g.rotate(half, -g.BarHeight/2, angle)
	return x1, y1, x2, y2
}

// FallProgress is the fraction of the fall animation done after elapsed.
func (g Geometry) FallProgress(elapsed time.Duration) float64 {
	if g.FallDuration <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(g.FallDuration)
	return math.Max(0, math.Min(1, p))
}

// ObjectBounds is where a falling object drawn for position is after elapsed.
func (g Geometry) ObjectBounds(position float64, elapsed time.Duration) Rect {
	return Rect{
		X:      g.ContainerWidth/2 + position - g.ObjectSize/2,
		Y:      g.FallProgress(elapsed) * g.FallDistance,
		Width:  g.ObjectSize,
		Height: g.ObjectSize,
	}
}

// Landed reports whether a falling object touches the bar.
func (g Geometry) Landed(position float64, elapsed time.Duration, angle float64) bool {
	return Overlaps(g.ObjectBounds(position, elapsed), g.BarBounds(angle))
}

// RestCenter is the centre of an object resting on the bar at position.
func (g Geometry) RestCenter(position, angle float64) (x, y float64) {
	return g.rotate(position, -g.BarHeight-g.ObjectSize/2, angle)
}

// ClickToPosition maps a click inside the clickable region onto a bar
// offset: (clickX - regionLeft) - BarWidth/2.
func (g Geometry) ClickToPosition(clickX, regionLeft float64) float64 {
	return (clickX - regionLeft) - g.BarWidth/2
}

// RegionLeft is the left edge of the clickable region, which spans the bar.
func (g Geometry) RegionLeft() float64 {
	return g.ContainerWidth/2 - g.BarWidth/2
}
