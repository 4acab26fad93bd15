package measurement

import (
	"sync"
	"time"
)

// Point the statistics of one measure point
type Point struct {
	name                     string
	sactive                  bool
	min, max, average, total time.Duration
	errorCount, count        int
	active, maxActive        int
	calcLock                 sync.Mutex
}

func NewPoint(name string, active bool) *Point {
	return &Point{
		name:    name,
		sactive: active,
	}
}

func (p *Point) Name() string {
	return p.name
}

func (p *Point) Reset() {
	p.calcLock.Lock()
	defer p.calcLock.Unlock()
	p.min = 0
	p.max = 0
	p.average = 0
	p.total = 0
	p.errorCount = 0
	p.count = 0
	p.active = 0
	p.maxActive = 0
}

// Monitor get a new monitor
func (p *Point) Monitor() Monitor {
	if p.sactive {
		return &defaultMonitor{point: p}
	}
	return &nullMonitor{}
}

func (p *Point) add(d time.Duration) {
	p.calcLock.Lock()
	defer p.calcLock.Unlock()
	if p.active > 0 {
		p.active--
	}
	p.count++
	p.total += d
	p.average = p.total / time.Duration(p.count)
	if d > p.max {
		p.max = d
	}
	if d < p.min || p.min == 0 {
		p.min = d
	}
}

func (p *Point) activate() {
	p.calcLock.Lock()
	defer p.calcLock.Unlock()
	p.active++
	if p.active > p.maxActive {
		p.maxActive = p.active
	}
}

func (p *Point) incError() {
	p.calcLock.Lock()
	defer p.calcLock.Unlock()
	p.errorCount++
}

func (p *Point) Data() Data {
	p.calcLock.Lock()
	defer p.calcLock.Unlock()
	return Data{
		Name:      p.name,
		Min:       p.min.Milliseconds(),
		Max:       p.max.Milliseconds(),
		Average:   p.average.Milliseconds(),
		Total:     p.total.Milliseconds(),
		Count:     p.count,
		Errors:    p.errorCount,
		MaxActive: p.maxActive,
	}
}
