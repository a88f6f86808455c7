// Package ui implements the interactive terminal front end: mood input,
// language and theme selectors, and a result view fed by one pipeline
// run per submit.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/moodify-app/moodify/internal/mood"
	"github.com/moodify-app/moodify/internal/recommend"
	"github.com/moodify-app/moodify/internal/render"
)

// Recommender runs the recommendation pipeline. recommend.Resolver satisfies this.
type Recommender interface {
	Recommend(ctx context.Context, moodText, languageCode string, limit int) (*recommend.Result, error)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FormView ViewState = iota
	BusyView
	ResultView
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1DB954")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
)

type recommendDoneMsg struct {
	result *recommend.Result
	err    error
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	resolver  Recommender
	moodInput textinput.Model
	langIdx   int
	theme     render.Theme
	rendered  string
	err       error
	width     int
	height    int
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, resolver Recommender, theme render.Theme) *Model {
	input := textinput.New()
	input.Placeholder = "how are you feeling?"
	input.SetValue("happy")
	input.Focus()
	input.CharLimit = 120
	input.Width = 40

	return &Model{
		ctx:       ctx,
		view:      FormView,
		resolver:  resolver,
		moodInput: input,
		theme:     theme,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

		switch m.view {
		case FormView:
			return m.handleFormKeys(msg)
		case BusyView:
			// One synchronous run per submit; input is ignored until it finishes.
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case recommendDoneMsg:
		m.err = msg.err
		if msg.err == nil {
			m.rendered = render.New(m.theme).Render(msg.result)
		}
		m.view = ResultView
		return m, nil
	}

	var cmd tea.Cmd
	m.moodInput, cmd = m.moodInput.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.view = BusyView
		return m, m.runRecommend()
	case "ctrl+l":
		m.langIdx = (m.langIdx + 1) % len(mood.LanguageCodes)
		return m, nil
	case "ctrl+t":
		if m.theme == render.ThemeDark {
			m.theme = render.ThemeLight
		} else {
			m.theme = render.ThemeDark
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.moodInput, cmd = m.moodInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = FormView
		m.err = nil
		m.moodInput.Focus()
		return m, textinput.Blink
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) runRecommend() tea.Cmd {
	moodText := m.moodInput.Value()
	language := mood.LanguageCodes[m.langIdx]
	return func() tea.Msg {
		result, err := m.resolver.Recommend(m.ctx, moodText, language, 0)
		return recommendDoneMsg{result: result, err: err}
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case BusyView:
		return fmt.Sprintf("%s\n\nFinding songs...\n", titleStyle.Render("Moodify"))
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) renderForm() string {
	title := titleStyle.Render("Moodify · mood-based recommendations")
	moodLine := fmt.Sprintf("%s %s", labelStyle.Render("Mood:"), m.moodInput.View())
	langLine := fmt.Sprintf("%s %s", labelStyle.Render("Language:"), mood.LanguageCodes[m.langIdx])
	themeLine := fmt.Sprintf("%s %s", labelStyle.Render("Theme:"), m.theme)
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s\n", title, moodLine, langLine, themeLine, helpView)
}

func (m *Model) renderResult() string {
	footer := m.help.ShortHelpView(m.keys.FullHelp()[1])
	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s\n", errStyle.Render(fmt.Sprintf("Error: %v", m.err)), footer)
	}
	return fmt.Sprintf("%s\n%s\n", m.rendered, footer)
}
