package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

type safeModel struct {
	m   model
	log *slog.Logger
	// panicErr survives the runDoneMsg that later overwrites m.err.
	panicErr error
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.update",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)

			tm, cmd = s.recovered(r, msg)
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.view",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			out = "Unexpected error (see logs)"
		}
	}()
	return s.m.View()
}

// recovered cancels the run and keeps draining events until runDoneMsg arrives,
// so the browser session is closed before the program exits.
func (s safeModel) recovered(r any, msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.panicErr == nil {
		s.panicErr = fmt.Errorf("tui panic: %v", r)
	}
	if done, ok := msg.(runDoneMsg); ok {
		s.m.done = true
		s.m.report, s.m.reportID, s.m.err = done.report, done.id, done.err
	}
	if s.m.done {
		return s, tea.Quit
	}
	if !s.m.cancelling {
		s.m.cancelling = true
		s.m.toast = "Unexpected error, closing the browser..."
		s.m.cancel()
	}
	return s, cmdWaitEvent(s.m.events)
}

// result is the run outcome, with a recovered panic taking precedence.
func (s safeModel) result() (domain.UploadReport, string, error) {
	err := s.m.err
	if s.panicErr != nil {
		err = s.panicErr
	}
	return s.m.report, s.m.reportID, err
}

var _ tea.Model = (*safeModel)(nil)
