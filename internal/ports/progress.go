package ports

import "github.com/doubley612/bloodhound-automation/internal/domain"

// ProgressSink receives progress events during an upload run. Implementations must not block.
type ProgressSink interface {
	Publish(ev domain.UploadEvent)
}
