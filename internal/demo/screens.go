package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	journalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type pageKeys struct {
	Next     key.Binding
	Back     key.Binding
	Root     key.Binding
	Settings key.Binding
	Toast    key.Binding
	Dismiss  key.Binding
}

var defaultPageKeys = pageKeys{
	Next:     key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next page")),
	Back:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "pop page")),
	Root:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "back to root")),
	Settings: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "settings")),
	Toast:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toast")),
	Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss toasts")),
}

func hints(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return hintStyle.Render(strings.Join(parts, "  |  "))
}

// pageScreen renders home and detail pages.
type pageScreen struct {
	app    *App
	vm     navigation.ViewModel
	depth  int
	status string
	keys   pageKeys
}

func newPageScreen(app *App, vm navigation.ViewModel, depth int) *pageScreen {
	return &pageScreen{app: app, vm: vm, depth: depth, keys: defaultPageKeys}
}

func (s *pageScreen) Init() tea.Cmd { return nil }

func (s *pageScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		s.status = ""
		if msg.err != nil {
			s.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Next):
			return s, s.app.OpenDetail(s.depth + 1)
		case key.Matches(msg, s.keys.Back):
			return s, s.app.Back()
		case key.Matches(msg, s.keys.Root):
			return s, s.app.BackToRoot()
		case key.Matches(msg, s.keys.Settings):
			return s, s.app.OpenSettings()
		case key.Matches(msg, s.keys.Toast):
			return s, s.app.ShowToast("hello from " + s.vm.ID())
		case key.Matches(msg, s.keys.Dismiss):
			return s, s.app.DismissToasts()
		}
	}
	return s, nil
}

func (s *pageScreen) View() string {
	var b strings.Builder
	title := "Home"
	if s.depth > 0 {
		title = fmt.Sprintf("Detail %d", s.depth)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for _, line := range s.app.journal.Lines() {
		b.WriteString(journalStyle.Render(line))
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString(errorStyle.Render(s.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hints(s.keys.Next, s.keys.Back, s.keys.Root, s.keys.Settings, s.keys.Toast, s.keys.Dismiss))
	return b.String()
}

type settingsKeys struct {
	Toggle key.Binding
	Close  key.Binding
}

// settingsScreen renders the settings modal. The host hands it the back key
// while it is shown.
type settingsScreen struct {
	app  *App
	vm   *SettingsViewModel
	keys settingsKeys
}

func newSettingsScreen(app *App, vm *SettingsViewModel) *settingsScreen {
	return &settingsScreen{
		app: app,
		vm:  vm,
		keys: settingsKeys{
			Toggle: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle animation")),
			Close:  key.NewBinding(key.WithKeys("esc", "q", "backspace"), key.WithHelp("esc", "close")),
		},
	}
}

func (s *settingsScreen) Init() tea.Cmd { return nil }

func (s *settingsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, s.keys.Toggle):
			s.vm.ToggleAnimate()
		case key.Matches(msg, s.keys.Close):
			return s, s.app.CloseSettings()
		}
	}
	return s, nil
}

func (s *settingsScreen) View() string {
	state := "off"
	if s.vm.Animate() {
		state = "on"
	}
	return fmt.Sprintf("Animated transitions: %s\n\n%s", state, hints(s.keys.Toggle, s.keys.Close))
}

// toastScreen is a popup. It has focus while shown, so it takes the toast
// keys itself; back is handled by the host.
type toastScreen struct {
	app  *App
	vm   *ToastViewModel
	keys pageKeys
}

func newToastScreen(app *App, vm *ToastViewModel) *toastScreen {
	return &toastScreen{app: app, vm: vm, keys: defaultPageKeys}
}

func (s *toastScreen) Init() tea.Cmd { return nil }

func (s *toastScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, s.keys.Toast):
			return s, s.app.ShowToast("another toast")
		case key.Matches(msg, s.keys.Dismiss):
			return s, s.app.DismissToasts()
		}
	}
	return s, nil
}

func (s *toastScreen) View() string { return s.vm.Text() }
