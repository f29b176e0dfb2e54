package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameRate = time.Second / 30
	// a full trajectory is played back in this many frames
	playbackFrames = 300
	scrubFraction  = 20
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// player walks a marker along the sampled trajectory in the phase view.
// The zero value is stopped at the first sample.
type player struct {
	head    int
	running bool
	ticking bool
}

func (p *player) start() tea.Cmd {
	p.running = true
	if p.ticking {
		return nil
	}
	p.ticking = true
	return tick()
}

func (p *player) stop() {
	p.running = false
}

func (p *player) toggle() tea.Cmd {
	if p.running {
		p.stop()
		return nil
	}
	return p.start()
}

func (p *player) reset() {
	p.head = 0
}

// advance moves the head one frame forward, wrapping at the end.
func (p *player) advance(n int) {
	if n == 0 {
		return
	}
	stride := n / playbackFrames
	if stride < 1 {
		stride = 1
	}
	p.head = (p.head + stride) % n
}

// scrub jumps a twentieth of the trajectory in direction dir and pauses.
func (p *player) scrub(dir, n int) {
	if n == 0 {
		return
	}
	p.running = false
	step := n / scrubFraction
	if step < 1 {
		step = 1
	}
	p.head += dir * step
	if p.head < 0 {
		p.head = 0
	}
	if p.head >= n {
		p.head = n - 1
	}
}

func (p player) index(n int) int {
	if n == 0 {
		return 0
	}
	if p.head >= n {
		return n - 1
	}
	return p.head
}

func (m App) onTick() (tea.Model, tea.Cmd) {
	if !m.showPhase || !m.player.running {
		m.player.ticking = false
		return m, nil
	}
	m.player.advance(m.samples())
	return m, tick()
}
