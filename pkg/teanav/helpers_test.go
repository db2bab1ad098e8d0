package teanav

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// testLoop stands in for a bubbletea program: it applies messages to the
// host one at a time on its own goroutine.
type testLoop struct {
	host *Host
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once
}

func startLoop(t *testing.T, h *Host) *testLoop {
	t.Helper()
	l := &testLoop{host: h, msgs: make(chan tea.Msg), done: make(chan struct{})}
	go l.run()
	h.Attach(l)
	t.Cleanup(func() {
		h.Stop()
		l.once.Do(func() { close(l.done) })
	})
	return l
}

func (l *testLoop) Send(msg tea.Msg) {
	select {
	case l.msgs <- msg:
	case <-l.done:
	}
}

func (l *testLoop) run() {
	for {
		select {
		case msg := <-l.msgs:
			l.host.Update(msg)
		case <-l.done:
			return
		}
	}
}

type pageVM struct {
	id string
}

func (p *pageVM) ID() string { return p.id }

type popupVM struct {
	id string
}

func (p *popupVM) ID() string { return p.id }

// textScreen renders fixed text and records the keys it receives.
type textScreen struct {
	text string
	keys []string
}

func (s *textScreen) Init() tea.Cmd { return nil }

func (s *textScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}

func (s *textScreen) View() string { return s.text }

func newTestLocator() *Locator {
	l := NewLocator()
	Register(l, "", func(vm *pageVM) tea.Model { return &textScreen{text: "page " + vm.id} })
	Register(l, "modal", func(vm *pageVM) tea.Model { return &textScreen{text: "modal " + vm.id} })
	Register(l, "", func(vm *popupVM) tea.Model { return &textScreen{text: "popup " + vm.id} })
	return l
}

func esc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}
