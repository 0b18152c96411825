package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

type model struct {
	theme Theme
	deps  Deps

	spin   spinner.Model
	events chan domain.UploadEvent
	ctx    context.Context
	cancel context.CancelFunc

	phase   string
	current string
	index   int
	total   int
	source  string
	results []domain.DomainResult
	started time.Time

	done       bool
	cancelling bool
	report     domain.UploadReport
	reportID   string
	err        error
	toast      string
	width      int
}

// Run shows live progress of one upload run and returns its outcome.
func Run(deps Deps) (domain.UploadReport, string, error) {
	if deps.Run == nil {
		return domain.UploadReport{}, "", errors.New("tui: Run is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newModel(ctx, cancel, deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger))
	final, err := p.Run()
	if err != nil {
		return domain.UploadReport{}, "", err
	}

	sm, ok := final.(safeModel)
	if !ok {
		return domain.UploadReport{}, "", errors.New("tui: unexpected final model")
	}
	return sm.result()
}

func newModel(ctx context.Context, cancel context.CancelFunc, deps Deps) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		theme:   DefaultTheme(),
		deps:    deps,
		spin:    s,
		events:  make(chan domain.UploadEvent, 32),
		ctx:     ctx,
		cancel:  cancel,
		phase:   "Preparing",
		started: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		cmdStartRun(m.ctx, m.deps.Run, m.events),
		cmdWaitEvent(m.events),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.done {
				return m, tea.Quit
			}
			if !m.cancelling {
				m.cancelling = true
				m.toast = "Cancelling, closing the browser..."
				m.cancel()
			}
			return m, nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case eventMsg:
		m.apply(domain.UploadEvent(msg))
		return m, cmdWaitEvent(m.events)

	case runDoneMsg:
		m.done = true
		m.report = msg.report
		m.reportID = msg.id
		m.err = msg.err
		if len(msg.report.Results) > len(m.results) {
			m.results = msg.report.Results
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) apply(ev domain.UploadEvent) {
	switch ev.Kind {
	case domain.EventSessionStarting:
		m.phase = "Starting BloodHound"
	case domain.EventSessionReady:
		m.phase = "Waiting for login screen"
	case domain.EventLoggedIn:
		m.phase = "Resolving domains"
	case domain.EventDomainsResolved:
		m.total = ev.Total
		m.source = ev.Message
		m.phase = "Uploading"
	case domain.EventDomainStarted:
		m.current = ev.Domain
		m.index = ev.Index
		m.total = ev.Total
		m.phase = "Uploading " + ev.Domain
	case domain.EventDomainDone:
		if ev.Result != nil {
			m.results = append(m.results, *ev.Result)
		}
		m.current = ""
	case domain.EventFinished:
		m.phase = "Finished"
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("houndup"))
	b.WriteString("\n")
	if m.deps.WorkspaceRoot != "" {
		b.WriteString(m.theme.Subtitle.Render("Workspace: " + m.deps.WorkspaceRoot))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !m.done {
		b.WriteString(m.spin.View())
		b.WriteString(" ")
	}
	b.WriteString(m.phase)
	if m.total > 0 {
		b.WriteString(m.theme.Help.Render(fmt.Sprintf("  (%d/%d domains, %s)", len(m.results), m.total, m.source)))
	}
	b.WriteString("\n\n")

	for _, r := range m.results {
		b.WriteString(renderResultLine(m.theme, r, m.width))
		b.WriteString("\n")
	}
	if m.current != "" {
		b.WriteString(m.theme.Help.Render("  … " + m.current))
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(m.theme.Error.Render("✗ " + UserMessage(m.err)))
		} else {
			b.WriteString(m.theme.Success.Render(fmt.Sprintf("✓ %d uploaded, %d skipped in %s",
				m.report.Uploaded(), m.report.Skipped(), formatElapsed(time.Since(m.started)))))
			if m.reportID != "" {
				b.WriteString("\n" + m.theme.Help.Render("Report: "+m.reportID))
			}
		}
		b.WriteString("\n")
	}

	if m.toast != "" && !m.done {
		b.WriteString("\n" + m.theme.Card.Render(m.toast) + "\n")
	}
	if !m.done {
		b.WriteString("\n" + m.theme.Help.Render("q: cancel"))
	}

	return wrap.Render(b.String())
}
