// Package teanav renders navigation stacks in a bubbletea program.
//
// A Host is both the bubbletea root model and the native surface that a
// navigation.ViewStack and navigation.PopupStack drive. Stack operations run
// on the caller's goroutine and are marshalled onto the bubbletea loop with
// Program.Send; the call returns once the loop has applied the change.
//
// The back key pops the top popup, or the top page when no modal is shown,
// without going through the stack. Those pops are reported on PagePopped and
// Events so the stacks can reconcile.
package teanav

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/viewstack/internal/mailbox"
	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

var (
	// ErrNotAttached is returned when an operation runs before Attach.
	ErrNotAttached = errors.New("teanav: host is not attached to a program")

	// ErrStopped is returned when an operation runs after Stop.
	ErrStopped = errors.New("teanav: host stopped")

	errNothingToPop = errors.New("teanav: nothing to pop")
)

// Sender delivers messages to a running bubbletea program. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

type entry struct {
	vm       navigation.ViewModel
	model    tea.Model
	contract string
	withNav  bool
}

type requestMsg struct {
	apply func(h *Host) tea.Cmd
	done  chan struct{}
}

// Surface lists what a Host currently shows, bottom to top.
type Surface struct {
	Pages  []navigation.ViewModel
	Modals []navigation.ViewModel
	Popups []navigation.ViewModel
}

// Host is a bubbletea model implementing navigation.View and
// navigation.PopupHost.
type Host struct {
	locator *Locator
	keys    KeyMap
	styles  Styles
	help    help.Model

	mu      sync.Mutex
	sender  Sender
	stopped chan struct{}
	stopper sync.Once

	popped *mailbox.Mailbox[navigation.ViewModel]
	events *mailbox.Mailbox[navigation.PopupEvent]

	// Owned by the bubbletea loop.
	pages  []entry
	modals []entry
	popups []entry
	width  int
	height int
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithKeyMap replaces the host key bindings.
func WithKeyMap(keys KeyMap) HostOption {
	return func(h *Host) { h.keys = keys }
}

// WithStyles replaces the host styles.
func WithStyles(styles Styles) HostOption {
	return func(h *Host) { h.styles = styles }
}

// NewHost creates a Host resolving screens through locator.
func NewHost(locator *Locator, opts ...HostOption) *Host {
	h := &Host{
		locator: locator,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		help:    help.New(),
		stopped: make(chan struct{}),
		popped:  mailbox.New[navigation.ViewModel](),
		events:  mailbox.New[navigation.PopupEvent](),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach sets the program the host marshals operations onto. It must be
// called before the first stack operation.
func (h *Host) Attach(s Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sender = s
}

// Stop fails pending and later operations with ErrStopped and closes the
// PagePopped and Events channels. Call it after the program exits.
func (h *Host) Stop() {
	h.stopper.Do(func() {
		close(h.stopped)
		h.popped.Close()
		h.events.Close()
	})
}

// do runs apply on the bubbletea loop and waits for it.
func (h *Host) do(ctx context.Context, apply func(h *Host) tea.Cmd) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	sender := h.sender
	h.mu.Unlock()
	if sender == nil {
		return ErrNotAttached
	}
	select {
	case <-h.stopped:
		return ErrStopped
	default:
	}

	req := requestMsg{apply: apply, done: make(chan struct{})}
	sender.Send(req)
	select {
	case <-req.done:
		return nil
	case <-h.stopped:
		return ErrStopped
	}
}

// PushPage shows the screen for viewModel on top of the page stack.
func (h *Host) PushPage(ctx context.Context, viewModel navigation.ViewModel, contract string, resetStack, animate bool) error {
	model, err := h.locator.Resolve(viewModel, contract)
	if err != nil {
		return err
	}
	return h.do(ctx, func(h *Host) tea.Cmd {
		e := entry{vm: viewModel, model: model, contract: contract}
		if resetStack {
			h.pages = []entry{e}
		} else {
			h.pages = append(h.pages, e)
		}
		return h.initEntry(e)
	})
}

// PopPage removes the top page.
func (h *Host) PopPage(ctx context.Context, animate bool) error {
	var popErr error
	err := h.do(ctx, func(h *Host) tea.Cmd {
		if len(h.pages) == 0 {
			popErr = errNothingToPop
			return nil
		}
		h.pages = h.pages[:len(h.pages)-1]
		return nil
	})
	return errors.Join(err, popErr)
}

// PushModal shows the screen for modal above the pages.
func (h *Host) PushModal(ctx context.Context, modal navigation.ViewModel, contract string, withNavigationPage bool) error {
	model, err := h.locator.Resolve(modal, contract)
	if err != nil {
		return err
	}
	return h.do(ctx, func(h *Host) tea.Cmd {
		e := entry{vm: modal, model: model, contract: contract, withNav: withNavigationPage}
		h.modals = append(h.modals, e)
		return h.initEntry(e)
	})
}

// PopModal removes the top modal.
func (h *Host) PopModal(ctx context.Context) error {
	var popErr error
	err := h.do(ctx, func(h *Host) tea.Cmd {
		if len(h.modals) == 0 {
			popErr = errNothingToPop
			return nil
		}
		h.modals = h.modals[:len(h.modals)-1]
		return nil
	})
	return errors.Join(err, popErr)
}

// PopToRootPage removes every page above the first.
func (h *Host) PopToRootPage(ctx context.Context, animate bool) error {
	return h.do(ctx, func(h *Host) tea.Cmd {
		if len(h.pages) > 1 {
			h.pages = h.pages[:1]
		}
		return nil
	})
}

// PagePopped reports pages removed by the back key.
func (h *Host) PagePopped() <-chan navigation.ViewModel {
	return h.popped.C
}

// Surface returns what the host currently shows.
func (h *Host) Surface(ctx context.Context) (Surface, error) {
	var s Surface
	err := h.do(ctx, func(h *Host) tea.Cmd {
		s = Surface{
			Pages:  viewModels(h.pages),
			Modals: viewModels(h.modals),
			Popups: viewModels(h.popups),
		}
		return nil
	})
	return s, err
}

func viewModels(entries []entry) []navigation.ViewModel {
	out := make([]navigation.ViewModel, len(entries))
	for i, e := range entries {
		out[i] = e.vm
	}
	return out
}

func (h *Host) initEntry(e entry) tea.Cmd {
	cmd := e.model.Init()
	if h.width == 0 && h.height == 0 {
		return cmd
	}
	size := tea.WindowSizeMsg{Width: h.width, Height: h.height}
	return tea.Batch(cmd, func() tea.Msg { return size })
}

// Init implements tea.Model.
func (h *Host) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestMsg:
		cmd := msg.apply(h)
		close(msg.done)
		return h, cmd

	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.help.Width = msg.Width
		return h, h.forwardAll(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, h.keys.Quit):
			return h, tea.Quit
		case key.Matches(msg, h.keys.Help):
			h.help.ShowAll = !h.help.ShowAll
			return h, nil
		case key.Matches(msg, h.keys.Back):
			if h.back() {
				return h, nil
			}
		}
	}
	return h, h.forward(msg)
}

// back pops natively and reports the removal. It returns false when the
// top surface should handle the key itself.
func (h *Host) back() bool {
	if n := len(h.popups); n > 0 {
		top := h.popups[n-1]
		h.events.Put(navigation.PopupEvent{Kind: navigation.PopupPopping, ViewModel: top.vm, Native: true})
		h.popups = h.popups[:n-1]
		h.events.Put(navigation.PopupEvent{Kind: navigation.PopupPopped, ViewModel: top.vm, Native: true})
		return true
	}
	if len(h.modals) > 0 {
		return false
	}
	if n := len(h.pages); n > 1 {
		top := h.pages[n-1]
		h.pages = h.pages[:n-1]
		h.popped.Put(top.vm)
		return true
	}
	return false
}

// top returns the topmost entry across popups, modals and pages.
func (h *Host) top() *entry {
	for _, layer := range [][]entry{h.popups, h.modals, h.pages} {
		if n := len(layer); n > 0 {
			return &layer[n-1]
		}
	}
	return nil
}

func (h *Host) forward(msg tea.Msg) tea.Cmd {
	e := h.top()
	if e == nil {
		return nil
	}
	var cmd tea.Cmd
	e.model, cmd = e.model.Update(msg)
	return cmd
}

func (h *Host) forwardAll(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, layer := range [][]entry{h.pages, h.modals, h.popups} {
		for i := range layer {
			var cmd tea.Cmd
			layer[i].model, cmd = layer[i].model.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (h *Host) View() string {
	var b strings.Builder
	b.WriteString(h.breadcrumb())
	b.WriteString("\n\n")

	if n := len(h.modals); n > 0 {
		m := h.modals[n-1]
		content := m.model.View()
		if m.withNav {
			content = h.styles.ModalTitle.Render(m.vm.ID()) + "\n" + content
		}
		b.WriteString(h.styles.Modal.Render(content))
	} else if n := len(h.pages); n > 0 {
		b.WriteString(h.pages[n-1].model.View())
	}

	for _, p := range h.popups {
		b.WriteString("\n")
		b.WriteString(h.styles.Popup.Render(p.model.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(h.styles.Footer.Render(h.help.View(h.keys)))
	return b.String()
}

func (h *Host) breadcrumb() string {
	ids := make([]string, len(h.pages))
	for i, p := range h.pages {
		ids[i] = p.vm.ID()
	}
	return h.styles.Breadcrumb.Render(strings.Join(ids, h.styles.Separator))
}
