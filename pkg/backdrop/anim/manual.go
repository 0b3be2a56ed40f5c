package anim

import "slices"

// ManualScheduler runs frames only when stepped. The zero value is ready.
type ManualScheduler struct {
	next    FrameID
	queue   []FrameID
	pending map[FrameID]func()
}

func (m *ManualScheduler) RequestFrame(fn func()) FrameID {
	if m.pending == nil {
		m.pending = make(map[FrameID]func())
	}
	m.next++
	m.pending[m.next] = fn
	m.queue = append(m.queue, m.next)
	return m.next
}

func (m *ManualScheduler) CancelFrame(id FrameID) {
	delete(m.pending, id)
	m.queue = slices.DeleteFunc(m.queue, func(q FrameID) bool { return q == id })
}

// Pending returns the number of outstanding frame requests.
func (m *ManualScheduler) Pending() int { return len(m.pending) }

// Step runs the oldest pending frame. It reports false when none is pending.
func (m *ManualScheduler) Step() bool {
	if len(m.queue) == 0 {
		return false
	}
	id := m.queue[0]
	m.queue = m.queue[1:]
	fn := m.pending[id]
	delete(m.pending, id)
	fn()
	return true
}

// Run steps up to n frames and returns how many ran.
func (m *ManualScheduler) Run(n int) int {
	ran := 0
	for ran < n && m.Step() {
		ran++
	}
	return ran
}
