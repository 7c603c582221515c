package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/seesaw/internal/balance"
	"github.com/san-kum/seesaw/internal/present"
	"github.com/san-kum/seesaw/internal/seesaw"
)

const (
	marginLeft = 3
	canvasTop  = 3
	logLines   = 6
	cursorStep = 10.0
)

type tickMsg time.Time

type eventMsg present.Event

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func listen(q *present.Queue) tea.Cmd {
	return func() tea.Msg { return eventMsg(<-q.C()) }
}

type Options struct {
	Tilt  time.Duration
	Frame time.Duration
	Theme string
}

type Model struct {
	ctrl     *seesaw.Controller
	queue    *present.Queue
	scene    *present.Scene
	interval time.Duration
	theme    Theme
	st       styles

	cursor float64
	now    time.Time
	width  int
	height int
}

func NewModel(ctrl *seesaw.Controller, q *present.Queue, opts Options) Model {
	scene := present.NewScene(ctrl.Geometry(), opts.Tilt)
	scene.Sync(ctrl.Snapshot())
	if opts.Frame <= 0 {
		opts.Frame = seesaw.DefaultFrameInterval
	}
	theme := GetTheme(opts.Theme)
	return Model{
		ctrl:     ctrl,
		queue:    q,
		scene:    scene,
		interval: opts.Frame,
		theme:    theme,
		st:       theme.styles(),
		now:      time.Now(),
		width:    80,
		height:   40,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(listen(m.queue), tick(m.interval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if pos, ok := m.positionAt(msg.X, msg.Y); ok {
				m.cursor = pos
				// rejections are logged by the controller
				_, _ = m.ctrl.Drop(pos)
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case eventMsg:
		m.scene.Apply(present.Event(msg), time.Now())
		return m, listen(m.queue)
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick(m.interval)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.cursor = math.Max(balance.MinPosition, m.cursor-cursorStep)
	case "right", "l":
		m.cursor = math.Min(balance.MaxPosition, m.cursor+cursorStep)
	case "0":
		m.cursor = 0
	case " ", "enter":
		_, _ = m.ctrl.Drop(m.cursor)
	case "r":
		m.ctrl.Reset()
	}
	return m, nil
}

func (m Model) canvasSize() (w, h int) {
	w = m.width - 2*marginLeft
	h = m.height - 16
	if w < 40 {
		w = 40
	}
	if h < 12 {
		h = 12
	}
	return w, h
}

// positionAt maps a terminal cell onto a bar offset. Clicks outside the
// drawing area are ignored; clicks past the bar ends still reach the
// controller so it can reject them.
func (m Model) positionAt(x, y int) (float64, bool) {
	w, h := m.canvasSize()
	col, row := x-marginLeft, y-canvasTop
	if col < 0 || col >= w || row < 0 || row >= h {
		return 0, false
	}
	g := m.scene.Geometry
	c := newCanvas(w, h, g)
	return g.ClickToPosition(c.unproject(col), g.RegionLeft()), true
}

func (m Model) View() string {
	w, h := m.canvasSize()
	g := m.scene.Geometry
	c := newCanvas(w, h, g)
	m.draw(c)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s%s  %s\n\n", strings.Repeat(" ", marginLeft),
		m.st.title.Render("s e e s a w"), m.status()))
	for _, row := range c.rows() {
		b.WriteString(strings.Repeat(" ", marginLeft) + row + "\n")
	}
	b.WriteString(strings.Repeat(" ", marginLeft) + m.st.dim.Render(strings.Repeat("─", w)) + "\n")
	b.WriteString(m.stats() + "\n")
	b.WriteString(m.logView())
	b.WriteString("\n" + m.st.muted.Render("   click/space drop  ←→ aim  0 centre  r reset  q quit") + "\n")
	return b.String()
}

func (m Model) status() string {
	if m.ctrl.CoolingDown() {
		return m.st.warning.Render("○ cooling down")
	}
	return m.st.muted.Render("● ready")
}

func (m Model) draw(c *canvas) {
	g := m.scene.Geometry
	angle := m.scene.DisplayAngle(m.now)

	// Aim marker along the top row.
	ax, _ := c.project(g.ContainerWidth/2+m.cursor, 0)
	c.set(ax, 0, '▼', present.HexColor(m.scene.State.NextWeight))

	x1, y1, x2, y2 := g.BarEnds(angle)
	cx1, cy1 := c.project(x1, y1)
	cx2, cy2 := c.project(x2, y2)
	c.line(cx1, cy1, cx2, cy2, '━', m.theme.Bar)

	px, py := g.Pivot()
	pcx, pcy := c.project(px, py)
	c.set(pcx, pcy, '▲', m.theme.Pivot)
	c.set(pcx, pcy+1, '█', m.theme.Pivot)

	for _, o := range m.scene.Resting() {
		x, y := g.RestCenter(o.Position, angle)
		col, row := c.project(x, y)
		drawObject(c, col, row, o.Weight)
	}
	for _, f := range m.scene.Falling() {
		r := m.scene.FallBounds(f, m.now)
		col, row := c.project(r.X+r.Width/2, r.Y+r.Height/2)
		drawObject(c, col, row, f.Object.Weight)
	}
}

func drawObject(c *canvas, col, row, weight int) {
	fg := present.HexColor(weight)
	c.set(col, row, '●', fg)
	c.text(col+1, row, present.Label(weight), fg)
}

func (m Model) stats() string {
	st := m.scene.State
	box := func(label, value string) string {
		return m.st.box.Render(m.st.muted.Render(label) + "\n" + m.st.text.Render(value))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		box("Left Weight", present.FormatWeight(st.LeftWeight)),
		box("Next Weight", present.Label(st.NextWeight)),
		box("Right Weight", present.FormatWeight(st.RightWeight)),
		box("Tilt Angle", present.FormatAngle(st.Angle)),
	)
	return lipgloss.NewStyle().MarginLeft(marginLeft).Render(row)
}

func (m Model) logView() string {
	lines := m.scene.Log
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(" ", marginLeft) + m.st.muted.Render("› ") + l + "\n")
	}
	return b.String()
}

// Run blocks until the user quits.
func Run(ctrl *seesaw.Controller, q *present.Queue, opts Options) error {
	p := tea.NewProgram(NewModel(ctrl, q, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
