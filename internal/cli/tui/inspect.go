package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peekapi-dev/sdk-go/internal/cli/reader"
)

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// inspectModel renders a reader.InspectResult as a scrollable detail box.
type inspectModel struct {
	data     *reader.InspectResult
	quitting bool
}

func newInspectModel(data any) (inspectModel, error) {
	result, ok := data.(*reader.InspectResult)
	if !ok {
		return inspectModel{}, fmt.Errorf("tui: unexpected data type %T for inspect view", data)
	}
	return inspectModel{data: result}, nil
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m inspectModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Spill File"))
	b.WriteString("\n\n")

	if !m.data.Exists {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Path:"), ValueStyle.Render(m.data.Path)))
		b.WriteString(WarnStyle.Render("no spill file present"))
		b.WriteString("\n")
		return BoxStyle.Render(b.String()) + "\n" + HelpStyle.Render("Press q to quit")
	}

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render(label+":"), ValueStyle.Render(value)))
	}
	row("Path", m.data.Path)
	row("Size", fmt.Sprintf("%d bytes", m.data.SizeBytes))
	row("Events", fmt.Sprintf("%d", m.data.EventCount))
	if !m.data.OldestEvent.IsZero() {
		row("Oldest", m.data.OldestEvent.Format("2006-01-02 15:04:05"))
		row("Newest", m.data.NewestEvent.Format("2006-01-02 15:04:05"))
	}

	if len(m.data.StatusCodes) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Status Codes"))
		b.WriteString("\n")
		codes := make([]int, 0, len(m.data.StatusCodes))
		for code := range m.data.StatusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			style := statusStyle(code)
			b.WriteString(fmt.Sprintf("  %s %s\n",
				style.Render(fmt.Sprintf("%d", code)),
				ValueStyle.Render(fmt.Sprintf("x%d", m.data.StatusCodes[code]))))
		}
	}

	if len(m.data.TopPaths) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Top Paths"))
		b.WriteString("\n")
		for _, p := range m.data.TopPaths {
			b.WriteString(fmt.Sprintf("  %s %s\n", ValueStyle.Render(p.Path), LabelStyle.Render(fmt.Sprintf("x%d", p.Count))))
		}
	}

	return BoxStyle.Render(b.String()) + "\n" + HelpStyle.Render("Press q or Ctrl+C to quit")
}

// RunInspect starts the inspect TUI over a *reader.InspectResult.
func RunInspect(data any) error {
	model, err := newInspectModel(data)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
