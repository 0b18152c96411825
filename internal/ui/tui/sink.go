package tui

import (
	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// channelSink forwards progress events to the UI loop.
type channelSink struct {
	ch chan<- domain.UploadEvent
}

var _ ports.ProgressSink = channelSink{}

func (s channelSink) Publish(ev domain.UploadEvent) {
	s.ch <- ev
}
