// Package tui renders a live terminal view of the cart-pendulum,
// advancing the entity in real time.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/askalov/cartpend/internal/dynamo"
	"github.com/askalov/cartpend/internal/entity"
)

const (
	canvasWidth  = 70
	canvasHeight = 20
	stepsPerTick = 4
	forceNudge   = 2.0
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// force is a mutable signal source fed by the arrow keys.
type force struct {
	value float64
}

func (f *force) Value(t int) []float64 {
	return []float64{f.value}
}

type model struct {
	pend   *entity.Pendulum
	force  *force
	dt     float64
	x0     dynamo.State
	paused bool
	canvas [][]rune

	width  int
	height int
}

// NewLive builds the live-view program model around an entity. The
// entity's force input is replugged to the key-controlled source.
func NewLive(pend *entity.Pendulum, dt float64) tea.Model {
	f := &force{}
	pend.ForceIn.Plug(f)

	canvas := make([][]rune, canvasHeight)
	for i := range canvas {
		canvas[i] = make([]rune, canvasWidth)
	}

	return model{
		pend:   pend,
		force:  f,
		dt:     dt,
		x0:     pend.State(),
		canvas: canvas,
		width:  80,
		height: 24,
	}
}

func Run(pend *entity.Pendulum, dt float64) error {
	p := tea.NewProgram(NewLive(pend, dt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "r":
			m.pend.SetState(m.x0)
			m.force.value = 0
		case "left", "h":
			m.force.value -= forceNudge
		case "right", "l":
			m.force.value += forceNudge
		case "0":
			m.force.value = 0
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused {
			for i := 0; i < stepsPerTick; i++ {
				m.pend.Advance(m.dt)
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	x := m.pend.State()

	m.clear()
	m.drawCartPendulum(x[0], x[1])

	var sb strings.Builder
	sb.WriteString(cyan.Render("cartpend live") + "\n\n")

	for _, row := range m.canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}

	status := fmt.Sprintf("t=%-6d x=%+.3f  θ=%+.3f  ẋ=%+.3f  θ̇=%+.3f  F=%+.1f",
		m.pend.Time(), x[0], x[1], x[2], x[3], m.force.value)
	if !x.IsValid() {
		sb.WriteString(red.Render("state is non-finite") + "\n")
	}
	sb.WriteString(white.Render(status) + "\n")
	if m.paused {
		sb.WriteString(yellow.Render("paused") + "\n")
	}
	sb.WriteString(dim.Render("←/→ push cart · 0 zero force · space pause · r reset · q quit"))
	return sb.String()
}

func (m model) clear() {
	for y := range m.canvas {
		for x := range m.canvas[y] {
			m.canvas[y][x] = ' '
		}
	}
}

func (m model) set(x, y int, c rune) {
	if x >= 0 && x < canvasWidth && y >= 0 && y < canvasHeight {
		m.canvas[y][x] = c
	}
}

func (m model) drawCartPendulum(pos, theta float64) {
	groundY := canvasHeight - 3
	for x := 0; x < canvasWidth; x++ {
		m.canvas[groundY+1][x] = '─'
	}

	// wrap the cart horizontally so it stays on screen
	cx := canvasWidth/2 + int(pos*8)%canvasWidth
	cx = ((cx % canvasWidth) + canvasWidth) % canvasWidth

	for dx := -2; dx <= 2; dx++ {
		m.set(cx+dx, groundY, '█')
	}

	// θ measured from the upright vertical
	poleLen := 10.0
	bx := cx + int(poleLen*math.Sin(theta))
	by := groundY - 1 - int(poleLen*math.Cos(theta))
	m.line(cx, groundY-1, bx, by, '·')
	m.set(bx, by, '●')
}

func (m model) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		m.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
