package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/seesaw/internal/present"
	"github.com/san-kum/seesaw/internal/seesaw"
)

const (
	windowWidth  = 1040
	windowHeight = 640
	logLines     = 14
)

var (
	ColBg       = rl.NewColor(240, 240, 240, 255)
	ColPanel    = rl.NewColor(255, 255, 255, 255)
	ColBar      = rl.NewColor(139, 69, 19, 255)
	ColPivot    = rl.NewColor(85, 85, 85, 255)
	ColRegion   = rl.NewColor(0, 0, 0, 12)
	ColText     = rl.NewColor(51, 51, 51, 255)
	ColTextDim  = rl.NewColor(130, 130, 130, 255)
	ColCooldown = rl.NewColor(220, 120, 0, 255)
)

type App struct {
	ctrl   *seesaw.Controller
	queue  *present.Queue
	scene  *present.Scene
	layout layout
}

func NewApp(ctrl *seesaw.Controller, q *present.Queue, tilt time.Duration) *App {
	scene := present.NewScene(ctrl.Geometry(), tilt)
	scene.Sync(ctrl.Snapshot())
	return &App{
		ctrl:   ctrl,
		queue:  q,
		scene:  scene,
		layout: layout{originX: 40, originY: 120, g: ctrl.Geometry()},
	}
}

func initWindow(fps int) {
	rl.InitWindow(windowWidth, windowHeight, "seesaw")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyEscape)
}

// Run opens the window and blocks until it is closed.
func Run(ctrl *seesaw.Controller, q *present.Queue, tilt time.Duration, fps int) {
	initWindow(fps)
	defer rl.CloseWindow()
	NewApp(ctrl, q, tilt).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	now := time.Now()
	for _, e := range a.queue.Drain() {
		a.scene.Apply(e, now)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		if pos, ok := a.layout.dropAt(float64(m.X), float64(m.Y)); ok {
			a.ctrl.Drop(pos)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.ctrl.Reset()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawStats()
	a.drawContainer()
	a.drawLog()
	a.drawText("[CLICK] DROP  [R] RESET  [ESC] QUIT", 40, windowHeight-30, 14, ColTextDim)

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}

func (a *App) drawStats() {
	st := a.scene.State
	a.drawText("seesaw", 40, 24, 28, ColText)

	stats := []struct{ label, value string }{
		{"Left Weight", present.FormatWeight(st.LeftWeight)},
		{"Next Weight", present.Label(st.NextWeight)},
		{"Right Weight", present.FormatWeight(st.RightWeight)},
		{"Tilt Angle", present.FormatAngle(st.Angle)},
	}
	for i, s := range stats {
		x := int32(40 + i*150)
		rl.DrawRectangle(x, 62, 140, 48, ColPanel)
		a.drawText(s.label, int(x)+10, 68, 12, ColTextDim)
		a.drawText(s.value, int(x)+10, 84, 20, ColText)
	}

	if a.ctrl.CoolingDown() {
		a.drawText("cooling down", 660, 84, 16, ColCooldown)
	}
}

func (a *App) drawContainer() {
	g := a.scene.Geometry
	l := a.layout
	now := time.Now()
	angle := a.scene.DisplayAngle(now)

	ox, oy := l.toScreen(0, 0)
	rl.DrawRectangle(int32(ox), int32(oy), int32(g.ContainerWidth), int32(g.ContainerHeight), ColPanel)

	r := l.clickable()
	rx, ry := l.toScreen(r.X, r.Y)
	rl.DrawRectangle(int32(rx), int32(ry), int32(r.Width), int32(r.Height), ColRegion)

	px, py := l.toScreen(g.Pivot())
	rl.DrawTriangle(
		rl.NewVector2(float32(px), float32(py)),
		rl.NewVector2(float32(px-15), float32(py+30)),
		rl.NewVector2(float32(px+15), float32(py+30)),
		ColPivot,
	)

	bar := rl.NewRectangle(float32(px), float32(py), float32(g.BarWidth), float32(g.BarHeight))
	origin := rl.NewVector2(float32(g.BarWidth/2), float32(g.BarHeight))
	rl.DrawRectanglePro(bar, origin, float32(angle), ColBar)

	for _, o := range a.scene.Resting() {
		cx, cy := l.toScreen(g.RestCenter(o.Position, angle))
		a.drawObject(cx, cy, o.Weight)
	}
	for _, f := range a.scene.Falling() {
		b := a.scene.FallBounds(f, now)
		cx, cy := l.toScreen(b.X+b.Width/2, b.Y+b.Height/2)
		a.drawObject(cx, cy, f.Object.Weight)
	}
}

func (a *App) drawObject(cx, cy float64, weight int) {
	r, g, b := present.ObjectColor(weight)
	rl.DrawCircle(int32(cx), int32(cy), float32(a.scene.Geometry.ObjectSize/2), rl.NewColor(r, g, b, 255))

	label := present.Label(weight)
	w := rl.MeasureText(label, 14)
	rl.DrawText(label, int32(cx)-w/2, int32(cy)-7, 14, rl.White)
}

func (a *App) drawLog() {
	x, y := 680, 120
	rl.DrawRectangle(int32(x), int32(y), 320, int32(a.scene.Geometry.ContainerHeight), ColPanel)
	a.drawText("Console", x+10, y+8, 14, ColText)

	lines := a.scene.Log
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}
	for i, line := range lines {
		a.drawText(fmt.Sprintf("> %s", line), x+10, y+32+i*18, 12, ColTextDim)
	}
}
