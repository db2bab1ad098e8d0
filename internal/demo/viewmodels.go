// Package demo is a small terminal app that drives the navigation stacks
// through teanav: numbered detail pages, a settings modal and toast popups.
package demo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

// ParamDepth is the parameter key carrying a detail page depth.
const ParamDepth = "depth"

var errMissingDepth = errors.New("demo: missing depth parameter")

// Journal keeps the most recent lifecycle events for display.
type Journal struct {
	mu    sync.Mutex
	lines []string
	limit int
}

// NewJournal creates a journal holding at most limit lines.
func NewJournal(limit int) *Journal {
	if limit <= 0 {
		limit = 8
	}
	return &Journal{limit: limit}
}

// Add appends a formatted line, dropping the oldest beyond the limit.
func (j *Journal) Add(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, fmt.Sprintf(format, args...))
	if over := len(j.lines) - j.limit; over > 0 {
		j.lines = append([]string(nil), j.lines[over:]...)
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (j *Journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.lines...)
}

// HomeViewModel is the root page.
type HomeViewModel struct {
	journal *Journal
	visits  atomic.Int32
}

func (h *HomeViewModel) ID() string { return "home" }

// Visits counts how many times home became the current page.
func (h *HomeViewModel) Visits() int { return int(h.visits.Load()) }

func (h *HomeViewModel) WhenNavigatedTo(ctx context.Context, parameter navigation.Parameter) error {
	h.visits.Inc()
	h.journal.Add("home: navigated to %s", parameter)
	return nil
}

func (h *HomeViewModel) WhenNavigatedFrom(ctx context.Context, parameter navigation.Parameter) error {
	h.journal.Add("home: navigated from")
	return nil
}

// DetailViewModel is a numbered page. Its depth arrives as a parameter
// before the page is shown.
type DetailViewModel struct {
	journal   *Journal
	depth     atomic.Int32
	destroyed atomic.Bool
}

func (d *DetailViewModel) ID() string { return fmt.Sprintf("detail-%d", d.Depth()) }

// Depth returns the page depth, 0 until the page is navigated to.
func (d *DetailViewModel) Depth() int { return int(d.depth.Load()) }

// Destroyed reports whether the page has been torn down.
func (d *DetailViewModel) Destroyed() bool { return d.destroyed.Load() }

func (d *DetailViewModel) WhenNavigatingTo(ctx context.Context, parameter navigation.Parameter) error {
	v, ok := parameter.Get(ParamDepth)
	if !ok {
		return errMissingDepth
	}
	depth, ok := v.(int)
	if !ok || depth < 1 {
		return fmt.Errorf("demo: invalid depth %v", v)
	}
	d.depth.Store(int32(depth))
	return nil
}

func (d *DetailViewModel) WhenNavigatedTo(ctx context.Context, parameter navigation.Parameter) error {
	d.journal.Add("%s: navigated to %s", d.ID(), parameter)
	return nil
}

func (d *DetailViewModel) WhenNavigatedFrom(ctx context.Context, parameter navigation.Parameter) error {
	d.journal.Add("%s: navigated from", d.ID())
	return nil
}

func (d *DetailViewModel) Destroy() {
	d.destroyed.Store(true)
	d.journal.Add("%s: destroyed", d.ID())
}

// SettingsViewModel backs the settings modal.
type SettingsViewModel struct {
	journal *Journal
	animate *atomic.Bool
}

func (s *SettingsViewModel) ID() string { return "settings" }

// Animate reports whether page transitions are animated.
func (s *SettingsViewModel) Animate() bool { return s.animate.Load() }

// ToggleAnimate flips the animation setting and returns the new value.
func (s *SettingsViewModel) ToggleAnimate() bool {
	v := !s.animate.Load()
	s.animate.Store(v)
	s.journal.Add("settings: animate=%t", v)
	return v
}

func (s *SettingsViewModel) WhenNavigatedTo(ctx context.Context, parameter navigation.Parameter) error {
	s.journal.Add("settings: opened")
	return nil
}

func (s *SettingsViewModel) WhenNavigatedFrom(ctx context.Context, parameter navigation.Parameter) error {
	s.journal.Add("settings: closed")
	return nil
}

// ToastViewModel is a transient popup.
type ToastViewModel struct {
	journal *Journal
	seq     int64
	text    string
}

func (t *ToastViewModel) ID() string { return fmt.Sprintf("toast-%d", t.seq) }

// Text returns the toast message.
func (t *ToastViewModel) Text() string { return t.text }

func (t *ToastViewModel) Destroy() {
	t.journal.Add("%s: dismissed", t.ID())
}
