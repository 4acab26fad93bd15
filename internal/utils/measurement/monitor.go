package measurement

import "time"

// Monitor measures a single run of a point
type Monitor interface {
	Start()
	Stop() bool
	IsRunning() bool
	Accrued() time.Duration
	SetError()
}

var (
	_ Monitor = (*defaultMonitor)(nil)
	_ Monitor = (*nullMonitor)(nil)
)

type nullMonitor struct {
	running bool
}

func (m *nullMonitor) Start()                 { m.running = true }
func (m *nullMonitor) IsRunning() bool        { return m.running }
func (m *nullMonitor) Accrued() time.Duration { return 0 }
func (m *nullMonitor) SetError()              {}

func (m *nullMonitor) Stop() bool {
	r := m.running
	m.running = false
	return r
}

type defaultMonitor struct {
	start   time.Time
	accrued time.Duration
	running bool
	point   *Point
}

// Start the time measurement
func (m *defaultMonitor) Start() {
	m.start = time.Now()
	m.running = true
	m.point.activate()
}

// Stop the time measurement and add it to the point, false if not running
func (m *defaultMonitor) Stop() bool {
	if !m.running {
		return false
	}
	m.accrued += time.Since(m.start)
	m.running = false
	m.point.add(m.accrued)
	return true
}

func (m *defaultMonitor) IsRunning() bool {
	return m.running
}

func (m *defaultMonitor) Accrued() time.Duration {
	return m.accrued
}

func (m *defaultMonitor) SetError() {
	m.point.incError()
}
