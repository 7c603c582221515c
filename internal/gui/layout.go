package gui

import "github.com/san-kum/seesaw/internal/seesaw"

// layout places the seesaw container inside the window.
type layout struct {
	originX, originY float64
	g                seesaw.Geometry
}

func (l layout) toScreen(x, y float64) (float64, float64) {
	return l.originX + x, l.originY + y
}

func (l layout) toContainer(x, y float64) (float64, float64) {
	return x - l.originX, y - l.originY
}

// clickable is the strip above the bar that accepts drops, in container
// coordinates.
func (l layout) clickable() seesaw.Rect {
	return seesaw.Rect{
		X:      l.g.RegionLeft(),
		Y:      0,
		Width:  l.g.BarWidth,
		Height: l.g.BarTop,
	}
}

// dropAt maps a window click onto a bar offset. ok is false when the
// click is outside the clickable strip.
func (l layout) dropAt(mx, my float64) (position float64, ok bool) {
	x, y := l.toContainer(mx, my)
	r := l.clickable()
	if x < r.X || x > r.Right() || y < r.Y || y > r.Bottom() {
		return 0, false
	}
	return l.g.ClickToPosition(x, r.X), true
}
