package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

func testModel() model {
	ctx, cancel := context.WithCancel(context.Background())
	run := func(context.Context, ports.ProgressSink) (domain.UploadReport, string, error) {
		return domain.UploadReport{}, "", nil
	}
	return newModel(ctx, cancel, Deps{Run: run, WorkspaceRoot: "/ws"})
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return mm, cmd
}

func TestModel_AppliesProgressEvents(t *testing.T) {
	m := testModel()

	m, _ = update(t, m, eventMsg{Kind: domain.EventDomainsResolved, Total: 2, Message: "enumerated"})
	m, _ = update(t, m, eventMsg{Kind: domain.EventDomainStarted, Domain: "corp", Total: 2})
	if m.current != "corp" || m.total != 2 {
		t.Fatalf("unexpected state: current=%q total=%d", m.current, m.total)
	}

	res := domain.DomainResult{Domain: "corp", Status: domain.StatusUploaded, Archive: "/r/x_corp.zip"}
	m, cmd := update(t, m, eventMsg{Kind: domain.EventDomainDone, Domain: "corp", Result: &res})
	if cmd == nil {
		t.Fatal("expected the model to keep listening for events")
	}
	if len(m.results) != 1 || m.current != "" {
		t.Fatalf("unexpected results: %+v", m.results)
	}

	view := m.View()
	for _, want := range []string{"houndup", "/ws", "x_corp.zip", "1/2 domains"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestModel_RunDoneQuits(t *testing.T) {
	m := testModel()
	report := domain.UploadReport{Results: []domain.DomainResult{{Domain: "lab", Status: domain.StatusSkipped, Reason: "no matching archive"}}}

	m, cmd := update(t, m, runDoneMsg{report: report, id: "20240101T000000Z_upload"})
	if !m.done || m.reportID != "20240101T000000Z_upload" {
		t.Fatalf("unexpected state: %+v", m)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "0 uploaded, 1 skipped") {
		t.Fatalf("unexpected summary:\n%s", m.View())
	}
}

func TestModel_CancelKeyCancelsRun(t *testing.T) {
	m := testModel()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.cancelling {
		t.Fatal("expected cancelling state")
	}
	if m.ctx.Err() == nil {
		t.Fatal("expected run context cancelled")
	}

	m, _ = update(t, m, runDoneMsg{err: context.Canceled})
	if !strings.Contains(m.View(), "Cancelled") {
		t.Fatalf("expected cancelled message:\n%s", m.View())
	}
}

func TestCommands_StreamEventsThenDone(t *testing.T) {
	events := make(chan domain.UploadEvent, 4)
	run := func(_ context.Context, sink ports.ProgressSink) (domain.UploadReport, string, error) {
		sink.Publish(domain.UploadEvent{Kind: domain.EventSessionStarting})
		return domain.UploadReport{}, "", errors.New("launch failed")
	}

	done := cmdStartRun(context.Background(), run, events)()
	msg, ok := done.(runDoneMsg)
	if !ok || msg.err == nil {
		t.Fatalf("unexpected done msg: %#v", done)
	}

	first := cmdWaitEvent(events)()
	if ev, ok := first.(eventMsg); !ok || ev.Kind != domain.EventSessionStarting {
		t.Fatalf("unexpected first event: %#v", first)
	}
	if next := cmdWaitEvent(events)(); next != nil {
		t.Fatalf("expected nil after close, got %#v", next)
	}
}

func TestSafeModel_PanicWaitsForRunToFinish(t *testing.T) {
	m := testModel()
	s := wrapSafe(m, nil)

	next, cmd := s.recovered("boom", eventMsg{Kind: domain.EventDomainStarted, Domain: "corp"})
	sm := next.(safeModel)
	if sm.m.ctx.Err() == nil {
		t.Fatal("expected the run context to be cancelled")
	}
	if sm.m.done || !sm.m.cancelling {
		t.Fatalf("model must keep waiting for the run: done=%v cancelling=%v", sm.m.done, sm.m.cancelling)
	}
	if cmd == nil {
		t.Fatal("expected the model to keep draining events")
	}

	sm.m.events <- domain.UploadEvent{Kind: domain.EventDomainDone, Domain: "corp"}
	if _, ok := cmd().(eventMsg); !ok {
		t.Fatal("expected a pending event wait, not a quit")
	}

	final, cmd := sm.Update(runDoneMsg{err: context.Canceled})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg once the run returned")
	}
	_, _, err := final.(safeModel).result()
	if err == nil || !strings.Contains(err.Error(), "tui panic: boom") {
		t.Fatalf("expected the panic to be reported, got %v", err)
	}
}

func TestSafeModel_PanicAfterRunQuits(t *testing.T) {
	s := wrapSafe(testModel(), nil)

	next, cmd := s.recovered("boom", runDoneMsg{id: "r1"})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected immediate quit when the run already returned")
	}
	sm := next.(safeModel)
	if !sm.m.done || sm.m.reportID != "r1" {
		t.Fatalf("unexpected state: done=%v id=%q", sm.m.done, sm.m.reportID)
	}
}
