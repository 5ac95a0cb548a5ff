package updater

import "time"

// Progress describes a running download.
type Progress struct {
	Received int64
	// Total is -1 while the size is unknown.
	Total int64
	// BytesPerSecond is the throughput of the latest sample window.
	BytesPerSecond float64
}

// Percent returns completion in [0,100], or -1 when the size is unknown.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	return float64(p.Received) * 100 / float64(p.Total)
}

// ProgressFunc receives progress reports. It is called from the download
// goroutine; UI code must marshal the value onto its own context.
type ProgressFunc func(Progress)

// meter throttles progress callbacks and keeps a rolling throughput figure.
type meter struct {
	fn       ProgressFunc
	now      func() time.Time
	interval time.Duration
	window   time.Duration

	total    int64
	received int64

	emitted  bool
	lastEmit time.Time

	sampleAt    time.Time
	sampleBytes int64
	rate        float64
}

func newMeter(total int64, fn ProgressFunc, now func() time.Time, interval, window time.Duration) *meter {
	return &meter{
		fn:       fn,
		now:      now,
		interval: interval,
		window:   window,
		total:    total,
		sampleAt: now(),
	}
}

// add records n more bytes and reports if the interval has passed.
func (m *meter) add(n int) {
	m.received += int64(n)
	t := m.now()
	m.sample(t, false)

	if !m.emitted || t.Sub(m.lastEmit) >= m.interval {
		m.emit(t)
	}
}

// finish reports the final state unconditionally. An unknown total is
// replaced by the received count.
func (m *meter) finish() {
	t := m.now()
	m.sample(t, true)
	if m.total < 0 {
		m.total = m.received
	}
	m.emit(t)
}

func (m *meter) sample(t time.Time, final bool) {
	elapsed := t.Sub(m.sampleAt)
	if elapsed < m.window && !(final && m.rate == 0) {
		return
	}
	if elapsed <= 0 {
		return
	}
	m.rate = float64(m.received-m.sampleBytes) / elapsed.Seconds()
	m.sampleAt = t
	m.sampleBytes = m.received
}

func (m *meter) emit(t time.Time) {
	m.emitted = true
	m.lastEmit = t
	if m.fn == nil {
		return
	}
	m.fn(Progress{Received: m.received, Total: m.total, BytesPerSecond: m.rate})
}
