package tui

import "github.com/doubley612/bloodhound-automation/internal/domain"

type eventMsg domain.UploadEvent

type runDoneMsg struct {
	report domain.UploadReport
	id     string
	err    error
}
