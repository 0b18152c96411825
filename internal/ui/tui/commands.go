package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

// cmdStartRun runs the upload and closes events when it returns.
func cmdStartRun(ctx context.Context, run RunFunc, events chan domain.UploadEvent) tea.Cmd {
	return func() tea.Msg {
		defer close(events)
		report, id, err := run(ctx, channelSink{ch: events})
		return runDoneMsg{report: report, id: id, err: err}
	}
}

// cmdWaitEvent delivers the next progress event; nil once the run is over.
func cmdWaitEvent(events <-chan domain.UploadEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}
