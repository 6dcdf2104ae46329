// Package progress tracks per-index-file conversion progress and fans
// snapshots out to sinks: a console bar on stderr and, optionally, a Redis
// key that external dashboards can poll.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Logger is the subset of logging.Logger the tracker needs.
type Logger interface {
	Warn(format string, args ...interface{})
}

// Snapshot is the state published after every change.
type Snapshot struct {
	RunID     string    `json:"run_id"`
	Label     string    `json:"label"`
	Total     int       `json:"total"`
	Done      int       `json:"done"`
	Failed    int       `json:"failed"`
	Pct       float64   `json:"pct"`
	Finished  bool      `json:"finished"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sink receives snapshots. Publish is called with the tracker lock held,
// so implementations see snapshots in order and must not call back into
// the tracker.
type Sink interface {
	Publish(s Snapshot) error
}

// Tracker counts completed IDs for the index file currently being
// processed. It is safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	runID  string
	label  string
	total  int
	done   int
	failed int
	sinks  []Sink
	broken []bool
	log    Logger
	now    func() time.Time
}

// NewTracker returns a Tracker that publishes to sinks. A nil sink is
// ignored.
func NewTracker(runID string, log Logger, sinks ...Sink) *Tracker {
	t := &Tracker{runID: runID, log: log, now: time.Now}
	for _, s := range sinks {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
	t.broken = make([]bool, len(t.sinks))
	return t
}

// Start resets the counters for a new unit of work.
func (t *Tracker) Start(label string, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.label, t.total, t.done, t.failed = label, total, 0, 0
	t.publish(false)
}

// Advance records one finished ID. ok is false for a failed conversion or
// write.
func (t *Tracker) Advance(ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	if !ok {
		t.failed++
	}
	t.publish(false)
}

// Finish publishes a final snapshot for the current unit.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.publish(true)
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot(false)
}

func (t *Tracker) snapshot(finished bool) Snapshot {
	var pct float64
	if t.total > 0 {
		pct = float64(t.done) * 100 / float64(t.total)
	}
	return Snapshot{
		RunID:     t.runID,
		Label:     t.label,
		Total:     t.total,
		Done:      t.done,
		Failed:    t.failed,
		Pct:       pct,
		Finished:  finished,
		UpdatedAt: t.now().UTC(),
	}
}

// publish sends the current state to every healthy sink. A sink that fails
// is reported once and skipped for the rest of the run.
func (t *Tracker) publish(finished bool) {
	if len(t.sinks) == 0 {
		return
	}
	s := t.snapshot(finished)
	for i, sink := range t.sinks {
		if t.broken[i] {
			continue
		}
		if err := sink.Publish(s); err != nil {
			t.broken[i] = true
			if t.log != nil {
				t.log.Warn("Progress sink disabled: %v", err)
			}
		}
	}
}

const barWidth = 30

// ConsoleBar redraws a single progress line on w:
//
//	Converting scc20230101.html [#########---------------------]  30/100
type ConsoleBar struct {
	w io.Writer
}

// NewConsoleBar returns a bar that draws on w.
func NewConsoleBar(w io.Writer) *ConsoleBar {
	return &ConsoleBar{w: w}
}

// Publish redraws the bar, ending the line when s is finished.
func (b *ConsoleBar) Publish(s Snapshot) error {
	filled := 0
	if s.Total > 0 {
		filled = s.Done * barWidth / s.Total
	}
	if filled > barWidth {
		filled = barWidth
	}
	line := fmt.Sprintf("\rConverting %s [%s%s] %*d/%d",
		s.Label,
		strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled),
		len(fmt.Sprint(s.Total)), s.Done, s.Total)
	if s.Failed > 0 {
		line += fmt.Sprintf(" (%d failed)", s.Failed)
	}
	if s.Finished {
		line += "\n"
	}
	_, err := io.WriteString(b.w, line)
	return err
}
