package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/seesaw/internal/present"
	"github.com/san-kum/seesaw/internal/seesaw"
)

func newTestModel(t *testing.T) (Model, *seesaw.Controller) {
	t.Helper()
	g := seesaw.DefaultGeometry()
	g.BarTop = 10000
	g.FallDuration = time.Hour
	q := present.NewQueue(0)
	ctrl := seesaw.New(seesaw.Options{Geometry: g, Presenter: q})
	t.Cleanup(ctrl.Close)
	return NewModel(ctrl, q, Options{}), ctrl
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestCursorMovesAndClamps(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, key("right"))
	m = update(m, key("right"))
	if m.cursor != 20 {
		t.Errorf("expected cursor 20, got %f", m.cursor)
	}
	for i := 0; i < 50; i++ {
		m = update(m, key("left"))
	}
	if m.cursor != -200 {
		t.Errorf("expected cursor clamped to -200, got %f", m.cursor)
	}
	m = update(m, key("0"))
	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %f", m.cursor)
	}
}

func TestSpaceDropsAtCursor(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = update(m, key("left"))
	m = update(m, key(" "))

	st := ctrl.Snapshot()
	if len(st.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(st.Objects))
	}
	if st.Objects[0].Position != -10 {
		t.Errorf("expected position -10, got %f", st.Objects[0].Position)
	}
}

func TestRejectedDropIsLogged(t *testing.T) {
	g := seesaw.DefaultGeometry()
	g.BarTop = 10000
	g.FallDuration = time.Hour
	q := present.NewQueue(0)
	ctrl := seesaw.New(seesaw.Options{Geometry: g, Presenter: q, Cooldown: time.Hour})
	t.Cleanup(ctrl.Close)
	m := NewModel(ctrl, q, Options{})

	m = update(m, key(" "))
	m = update(m, key("right"))
	m = update(m, key(" "))

	if n := len(ctrl.Snapshot().Objects); n != 1 {
		t.Fatalf("expected the second drop to be rejected, got %d objects", n)
	}
	found := false
	for _, line := range ctrl.Events() {
		if strings.HasPrefix(line, "Clicking too fast!") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a cooldown line in %v", ctrl.Events())
	}
	if m.cursor != 10 {
		t.Errorf("expected cursor 10 after the rejected drop, got %f", m.cursor)
	}
}

func TestResetKey(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = update(m, key(" "))
	m = update(m, key("r"))
	if n := len(ctrl.Snapshot().Objects); n != 0 {
		t.Errorf("expected no objects after reset, got %d", n)
	}
}

func TestPositionAt(t *testing.T) {
	m, _ := newTestModel(t)
	w, h := m.canvasSize()

	if _, ok := m.positionAt(0, canvasTop); ok {
		t.Error("expected click in the margin to be ignored")
	}
	if _, ok := m.positionAt(marginLeft, canvasTop+h); ok {
		t.Error("expected click below the canvas to be ignored")
	}

	cellWidth := m.scene.Geometry.ContainerWidth / float64(w)
	pos, ok := m.positionAt(marginLeft+w/2, canvasTop+1)
	if !ok {
		t.Fatal("expected click inside the canvas")
	}
	if math.Abs(pos) > cellWidth {
		t.Errorf("expected centre click near 0, got %f", pos)
	}

	left, _ := m.positionAt(marginLeft+1, canvasTop)
	right, _ := m.positionAt(marginLeft+w-2, canvasTop)
	if left >= right {
		t.Errorf("expected positions to grow left to right, got %f and %f", left, right)
	}
}

func TestMouseClickDrops(t *testing.T) {
	m, ctrl := newTestModel(t)
	w, _ := m.canvasSize()
	m = update(m, tea.MouseMsg{
		X:      marginLeft + w/2,
		Y:      canvasTop + 2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if n := len(ctrl.Snapshot().Objects); n != 1 {
		t.Errorf("expected 1 object after click, got %d", n)
	}
}

func TestEventMsgUpdatesScene(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(eventMsg(present.Event{Kind: present.LogEvent, Line: "hello"}))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected listen command to be re-armed")
	}
	if got := m.scene.Log[len(m.scene.Log)-1]; got != "hello" {
		t.Errorf("expected last log line hello, got %q", got)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	out := m.View()
	for _, want := range []string{"Next Weight", "Left Weight", "Right Weight", "Tilt Angle", "0.0°"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("expected retro theme")
	}
	if GetTheme("nope").Name != "classic" {
		t.Error("expected unknown theme to fall back to classic")
	}
	names := ListThemes()
	if len(names) != 3 || names[0] != "classic" {
		t.Errorf("expected sorted theme names, got %v", names)
	}
}
