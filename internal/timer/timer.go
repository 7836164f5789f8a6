// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package timer

import (
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/J-sephB-lt-n/logsetup/internal/logger"
)

const (
	startedMessage   = "Started section '%s'"
	finishedMessage  = "Finished section '%s' (total runtime %d seconds = %.2f minutes)"
	restartedMessage = "Restarted section '%s' while it was still running"

	sectionKey = "section"
)

// printer renders numbers with English digit grouping, e.g. 3,725.
var printer = message.NewPrinter(language.English)

// Sink receives the messages emitted by a Timer. logger.Logger satisfies it.
type Sink interface {
	Log(level logger.Level, msg string, args ...interface{})
}

// Observer is notified with the elapsed time of every section that ends successfully.
type Observer interface {
	ObserveSection(name string, elapsed time.Duration)
}

type discardSink struct{}

func (discardSink) Log(logger.Level, string, ...interface{}) {}

// Option configures a Timer.
type Option func(*Timer)

// WithSink sets the sink used from the first call on.
func WithSink(sink Sink) Option {
	return func(t *Timer) {
		t.SetSink(sink)
	}
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(clock func() time.Time) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithObserver registers an observer for finished sections.
func WithObserver(observer Observer) Option {
	return func(t *Timer) {
		t.observer = observer
	}
}

// WithRestartWarning emits a WARN message when a running section is started again.
// The restart itself still happens.
func WithRestartWarning() Option {
	return func(t *Timer) {
		t.warnOnRestart = true
	}
}

// Timer is a registry of named sections.
type Timer struct {
	clock         func() time.Time
	observer      Observer
	warnOnRestart bool

	lock     sync.Mutex
	sink     Sink
	sections map[string]*sectionState
}

type sectionState struct {
	startTime time.Time
	running   bool
}

// New returns an empty Timer. Without a sink every message is discarded.
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:    time.Now,
		sink:     discardSink{},
		sections: make(map[string]*sectionState),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SetSink replaces the sink for all subsequent messages. A nil sink discards them.
func (t *Timer) SetSink(sink Sink) {
	if sink == nil {
		sink = discardSink{}
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.sink = sink
}

// Section returns a handle bound to name. The registry entry is created on the first Start.
func (t *Timer) Section(name string) *Section {
	return &Section{timer: t, name: name}
}

// Sections returns the sorted names of every section started at least once.
func (t *Timer) Sections() []string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return slices.Sorted(maps.Keys(t.sections))
}

func (t *Timer) start(name string) (Sink, bool) {
	now := t.clock()

	t.lock.Lock()
	defer t.lock.Unlock()

	state, ok := t.sections[name]
	if !ok {
		state = new(sectionState)
		t.sections[name] = state
	}

	restarted := state.running
	state.startTime = now
	state.running = true
	return t.sink, restarted
}

func (t *Timer) end(name string) (Sink, time.Duration, error) {
	now := t.clock()

	t.lock.Lock()
	defer t.lock.Unlock()

	state, ok := t.sections[name]
	if !ok || !state.running {
		return nil, 0, &StateError{Section: name}
	}

	state.running = false
	return t.sink, max(now.Sub(state.startTime), 0), nil
}

func (t *Timer) running(name string) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	state, ok := t.sections[name]
	return ok && state.running
}

// Section is a handle on a named interval of a Timer.
type Section struct {
	timer *Timer
	name  string
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Running reports whether the section has been started and not yet ended.
func (s *Section) Running() bool {
	return s.timer.running(s.name)
}

// Start begins the interval and reports it at INFO level. Starting a running section
// restarts its interval.
func (s *Section) Start() {
	s.StartWithLevel(logger.INFO)
}

// StartWithLevel is Start with the message emitted at level.
func (s *Section) StartWithLevel(level logger.Level) {
	sink, restarted := s.timer.start(s.name)
	if restarted && s.timer.warnOnRestart {
		sink.Log(logger.WARN, printer.Sprintf(restartedMessage, s.name), sectionKey, s.name)
	}

	sink.Log(level, printer.Sprintf(startedMessage, s.name), sectionKey, s.name)
}

// End closes the interval, reports the elapsed time at INFO level and returns it.
// It returns a *StateError if the section is not running.
func (s *Section) End() (time.Duration, error) {
	return s.EndWithLevel(logger.INFO)
}

// EndWithLevel is End with the message emitted at level.
func (s *Section) EndWithLevel(level logger.Level) (time.Duration, error) {
	sink, elapsed, err := s.timer.end(s.name)
	if err != nil {
		return 0, err
	}

	if s.timer.observer != nil {
		s.timer.observer.ObserveSection(s.name, elapsed)
	}

	sink.Log(level, FinishedMessage(s.name, elapsed), sectionKey, s.name)
	return elapsed, nil
}

// FinishedMessage renders the message reported when a section ends: whole seconds
// and minutes with two decimals.
func FinishedMessage(name string, elapsed time.Duration) string {
	seconds := elapsed.Seconds()
	return printer.Sprintf(finishedMessage, name, int64(math.RoundToEven(seconds)), seconds/60)
}
