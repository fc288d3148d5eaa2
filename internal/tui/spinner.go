package tui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerWork is run while the spinner is shown. status replaces the
// spinner title.
type SpinnerWork func(ctx context.Context, status func(string)) error

type spinnerStatusMsg string

type spinnerDoneMsg struct {
	err error
}

// spinnerModel is the bubbletea model for a single long-running step
type spinnerModel struct {
	spinner   spinner.Model
	title     string
	doneTitle string
	run       func() tea.Msg
	cancel    context.CancelFunc
	done      bool
	err       error
}

func newSpinnerModel(title, doneTitle string, run func() tea.Msg, cancel context.CancelFunc) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return spinnerModel{spinner: s, title: title, doneTitle: doneTitle, run: run, cancel: cancel}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			// The work sees the cancellation and reports back through spinnerDoneMsg.
			m.cancel()
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case spinnerStatusMsg:
		m.title = string(msg)
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return ""
		}
		return greenStyle.Render("✔ "+m.doneTitle) + "\n"
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// RunWithSpinner runs work behind a spinner on a terminal. Without a
// terminal, work runs directly and status updates go to splog.
func RunWithSpinner(ctx context.Context, splog *Splog, title, doneTitle string, work SpinnerWork) error {
	if !Interactive() {
		splog.Info("%s", title)
		err := work(ctx, func(status string) { splog.Debug("%s", status) })
		if err == nil {
			splog.Info("✔ %s", doneTitle)
		}
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var p *tea.Program
	run := func() tea.Msg {
		return spinnerDoneMsg{err: work(ctx, func(status string) { p.Send(spinnerStatusMsg(status)) })}
	}
	p = tea.NewProgram(newSpinnerModel(title, doneTitle, run, cancel), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))

	splog.SetQuiet(true)
	final, err := p.Run()
	splog.SetQuiet(false)
	if err != nil {
		return err
	}

	m, ok := final.(spinnerModel)
	if !ok {
		return errors.New("unexpected model type")
	}
	return m.err
}
