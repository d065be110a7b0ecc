package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/petrijr/featuretour"
	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/recorder"
)

// screenTop is the row of the terminal where the screen canvas starts.
const screenTop = 1

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	menuStyle   = lipgloss.NewStyle().Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the demo host. It renders the demo
// screen, runs tours from the catalog and drives the recorder.
type Model struct {
	ctx     context.Context
	session *featuretour.Session
	screen  *Screen
	widgets *DemoWidgets
	tours   []featuretour.TourDefinition

	tourName string
	tourID   string

	cursor int

	prompting bool
	header    textinput.Model
	content   textinput.Model
	focus     int

	status string
	err    error
	output string
}

// NewModel creates the demo model. The session must have been set up with
// SetupDemo for the same widgets.
func NewModel(ctx context.Context, s *featuretour.Session, screen *Screen, w *DemoWidgets, tourName, tourID string) Model {
	header := textinput.New()
	header.Placeholder = "Header"
	header.CharLimit = 80
	content := textinput.New()
	content.Placeholder = "Content"
	content.CharLimit = 200

	return Model{
		ctx:      ctx,
		session:  s,
		screen:   screen,
		widgets:  w,
		tours:    s.Catalog.List(),
		tourName: tourName,
		tourID:   tourID,
		header:   header,
		content:  content,
		status:   "Choose a tour and press enter",
	}
}

// PreviewRestoredMsg tells the model the preview restore delay has passed.
type PreviewRestoredMsg struct{}

// NewProgram wraps m in a full-screen program with mouse support.
func NewProgram(m Model, opts ...tea.ProgramOption) *tea.Program {
	return tea.NewProgram(
		m,
		append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)...,
	)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.Resize(min(msg.Width, DemoWidth), min(max(msg.Height-8, 3), DemoHeight))
		return m, nil

	case PreviewRestoredMsg:
		m.status = "Recorder is back. r: record again  g/J/y: export"
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		pt := api.Point{X: float64(msg.X), Y: float64(msg.Y - screenTop)}
		m.setErr(m.screen.PointerDown(m.ctx, pt))
		return m.afterCapture()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Close(m.ctx)
			return m, tea.Quit
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		if m.session.Recorder.IsRecording() {
			m.setErr(m.screen.Key(m.ctx, msg.String()))
			if !m.session.Recorder.IsRecording() {
				m.status = fmt.Sprintf("Recorded %d steps. p: preview  g/J/y: code/JSON/YAML", len(m.session.Recorder.Steps()))
			}
			return m, nil
		}
		if run, ok := m.session.Navigator.Run(); ok && run.Status == api.StatusRunning {
			return m.updateTour(msg)
		}
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m *Model) setErr(err error) {
	m.err = err
}

// afterCapture switches to the prompt when a click left a pending capture.
func (m Model) afterCapture() (tea.Model, tea.Cmd) {
	p, ok := m.session.Recorder.Pending()
	if !ok || m.prompting {
		return m, nil
	}
	draft := p.Draft()
	m.prompting = true
	m.focus = 0
	m.header.SetValue(draft.Header)
	m.content.SetValue(draft.Content)
	m.content.Blur()
	m.status = fmt.Sprintf("New step for %s (%s). tab: switch field  enter: add  esc: skip", draft.ElementID, draft.ElementType)
	cmd := m.header.Focus()
	return m, cmd
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.session.Recorder.Pending()
	if !ok {
		m.prompting = false
		return m, nil
	}

	switch msg.String() {
	case "esc":
		p.Skip()
		m.endPrompt("Step skipped")
		return m, nil
	case "tab", "shift+tab":
		m.focus = 1 - m.focus
		var cmd tea.Cmd
		if m.focus == 0 {
			m.content.Blur()
			cmd = m.header.Focus()
		} else {
			m.header.Blur()
			cmd = m.content.Focus()
		}
		return m, cmd
	case "enter":
		err := p.Confirm(m.ctx, api.StepInput{Header: m.header.Value(), Content: m.content.Value()})
		if errors.Is(err, api.ErrValidation) {
			m.err = err
			return m, nil
		}
		m.setErr(err)
		m.endPrompt(fmt.Sprintf("%d steps recorded. Press esc on the screen to finish", len(m.session.Recorder.Steps())))
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.header, cmd = m.header.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) endPrompt(status string) {
	m.prompting = false
	m.header.Blur()
	m.content.Blur()
	m.header.Reset()
	m.content.Reset()
	m.status = status
}

func (m Model) updateTour(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.session.Navigator
	switch msg.String() {
	case "n", "right", "enter", " ":
		m.setErr(nav.MoveNext(m.ctx))
	case "b", "left":
		m.setErr(nav.MovePrevious(m.ctx))
	case "x", "esc", "q":
		m.setErr(nav.Close(m.ctx))
	case "c":
		m.setErr(Clear(m.ctx, m.session, m.widgets))
	}
	if run, ok := nav.Run(); ok && run.Status.Terminal() {
		m.status = fmt.Sprintf("%s: %s", run.TourName, strings.ToLower(string(run.Status)))
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tours)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.tours) == 0 {
			return m, nil
		}
		def := m.tours[m.cursor]
		m.output = ""
		m.setErr(m.session.StartDefinition(m.ctx, def.TourID()))
		m.status = "n: next  b: back  x: close  c: clear form"
	case "c":
		m.setErr(Clear(m.ctx, m.session, m.widgets))
	case "r":
		m.output = ""
		if err := m.session.Recorder.StartRecording(m.ctx, m.screen); err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Click elements to record steps"
	case "p":
		res, err := m.session.Preview(m.ctx, m.tourName)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.status = "Previewing"
		if len(res.Unresolved) > 0 {
			m.status += fmt.Sprintf(" (unresolved: %s)", strings.Join(res.Unresolved, ", "))
		}
	case "g", "J", "y":
		m.output, m.err = m.generate(msg.String())
	}
	return m, nil
}

func (m Model) generate(key string) (string, error) {
	steps := m.session.Recorder.Steps()
	switch key {
	case "g":
		return recorder.GenerateCode(m.tourName, m.tourID, steps)
	case "J":
		return recorder.GenerateData(m.tourName, m.tourID, steps)
	default:
		return recorder.GenerateYAML(m.tourName, m.tourID, steps)
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("featuretour demo"))
	b.WriteString("\n")
	b.WriteString(m.screen.Render())
	b.WriteString("\n")

	if banner, ok := m.screen.Banner(); ok {
		b.WriteString(bannerStyle.Render(banner))
		b.WriteString("\n")
	}

	switch {
	case m.prompting:
		b.WriteString(m.header.View())
		b.WriteString("\n")
		b.WriteString(m.content.View())
		b.WriteString("\n")
	case m.session.Recorder.IsRecording():
	default:
		if run, ok := m.session.Navigator.Run(); !ok || run.Status != api.StatusRunning {
			b.WriteString(m.menuView())
		}
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.status))
	if m.output != "" {
		b.WriteString("\n\n")
		b.WriteString(m.output)
	}
	return b.String()
}

func (m Model) menuView() string {
	var lines []string
	for i, def := range m.tours {
		line := fmt.Sprintf("%s - %s", def.TourName(), def.Description())
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, helpStyle.Render("enter: start  r: record  p: preview  g/J/y: export  q: quit"))
	return menuStyle.Render(strings.Join(lines, "\n")) + "\n"
}
