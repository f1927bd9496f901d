// Package status holds the single-line status message shown by the
// front-ends and resets it to Ready after a delay.
package status

import (
	"sync"
	"time"

	"darkarchiver/internal/log"
)

// Ready is the idle message.
const Ready = "Ready"

// DefaultResetAfter is used when no delay is configured.
const DefaultResetAfter = 3 * time.Second

// Level colours a message.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Message is what the bar currently shows.
type Message struct {
	Text  string
	Level Level
}

// Bar is safe for concurrent use. Each Show bumps a generation counter and
// schedules a reset tagged with it; a reset whose generation is no longer
// current does nothing.
type Bar struct {
	emit sync.Mutex // serialises onChange calls
	mu   sync.Mutex

	msg        Message
	gen        uint64
	resetAfter time.Duration
	timer      *time.Timer
	stopped    bool
	onChange   func(Message)
}

// New creates a Bar showing Ready. A non-positive delay uses DefaultResetAfter.
func New(resetAfter time.Duration) *Bar {
	if resetAfter <= 0 {
		resetAfter = DefaultResetAfter
	}
	return &Bar{
		msg:        Message{Text: Ready, Level: Info},
		resetAfter: resetAfter,
	}
}

// OnChange registers fn to be called after every change, including resets.
// fn runs on the goroutine that caused the change and must not call Show.
func (b *Bar) OnChange(fn func(Message)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Show replaces the current message and schedules the reset.
func (b *Bar) Show(text string, level Level) {
	b.emit.Lock()
	defer b.emit.Unlock()

	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.msg = Message{Text: text, Level: level}
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if !b.stopped {
		b.timer = time.AfterFunc(b.resetAfter, func() { b.reset(gen) })
	}
	msg, fn := b.msg, b.onChange
	b.mu.Unlock()

	log.LogWithFields(log.F("level", level.String()), log.F("generation", gen)).Debugf("status: %s", text)
	if fn != nil {
		fn(msg)
	}
}

func (b *Bar) Info(text string)    { b.Show(text, Info) }
func (b *Bar) Success(text string) { b.Show(text, Success) }
func (b *Bar) Warn(text string)    { b.Show(text, Warning) }
func (b *Bar) Error(text string)   { b.Show(text, Error) }

// Current returns the message on display.
func (b *Bar) Current() Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}

// Generation returns the number of messages shown so far.
func (b *Bar) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen
}

// Stop cancels any pending reset. Later messages stay until replaced.
func (b *Bar) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Bar) reset(gen uint64) {
	b.emit.Lock()
	defer b.emit.Unlock()

	b.mu.Lock()
	if gen != b.gen || b.stopped {
		b.mu.Unlock()
		return
	}
	b.msg = Message{Text: Ready, Level: Info}
	b.timer = nil
	msg, fn := b.msg, b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}
