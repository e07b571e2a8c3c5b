package ingest

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many records a load has stored and how many
// of its files are done. A nil tracker ignores every call.
type ProgressTracker struct {
	writer         io.Writer
	files          int
	filesDone      int
	records        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a tracker for a load of the given number of
// files. Progress is written every reportInterval stored records.
func NewProgressTracker(writer io.Writer, files, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		files:          files,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startTime = time.Now()
	p.started = true
}

// Stored counts records written by one batch.
func (p *ProgressTracker) Stored(n int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.records += n
	if p.records-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.records
	}
}

// FileDone marks one file as finished.
func (p *ProgressTracker) FileDone() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.filesDone++
	p.report()
}

// Current returns the number of records stored so far.
func (p *ProgressTracker) Current() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.records
}

// Finish prints the final line.
func (p *ProgressTracker) Finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.report()
	fmt.Fprintln(p.writer)
	p.started = false
}

// Elapsed returns the time since Start, or zero if never started.
func (p *ProgressTracker) Elapsed() time.Duration {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startTime.IsZero() {
		return 0
	}
	return time.Since(p.startTime)
}

// report must be called with the lock held.
func (p *ProgressTracker) report() {
	rate := 0.0
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		rate = float64(p.records) / elapsed
	}
	fmt.Fprintf(p.writer, "\rLoaded: %d records, %d/%d files - %.1f records/s",
		p.records, p.filesDone, p.files, rate)
}
