package domain

import "time"

// UploadStatus is the outcome of one domain within a run.
type UploadStatus string

const (
	StatusUploaded UploadStatus = "uploaded"
	StatusSkipped  UploadStatus = "skipped"
)

// DomainResult describes what happened to a single domain.
type DomainResult struct {
	Domain     string       `json:"domain"`
	Status     UploadStatus `json:"status"`
	Archive    string       `json:"archive,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	DurationMS int64        `json:"duration_ms"`
}

// UploadReport is the persisted record of one invocation.
type UploadReport struct {
	RunID           string         `json:"run_id"`
	StartedAt       time.Time      `json:"started_at"`
	EndedAt         time.Time      `json:"ended_at"`
	DomainSource    DomainSource   `json:"domain_source"`
	AlreadyLoggedIn bool           `json:"already_logged_in"`
	Results         []DomainResult `json:"results"`
}

// Uploaded returns how many domains had an archive submitted.
func (r UploadReport) Uploaded() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusUploaded {
			n++
		}
	}
	return n
}

// Skipped returns how many domains had no matching archive.
func (r UploadReport) Skipped() int {
	return len(r.Results) - r.Uploaded()
}

// UploadPlan is what a run would do, computed without a browser.
type UploadPlan struct {
	DomainSource DomainSource
	Entries      []PlanEntry
}

type PlanEntry struct {
	Domain  string
	Archive Archive
	Found   bool
}

// EventKind classifies progress events emitted during an upload run.
type EventKind string

const (
	EventSessionStarting EventKind = "session.starting"
	EventSessionReady    EventKind = "session.ready"
	EventLoggedIn        EventKind = "login.done"
	EventDomainsResolved EventKind = "domains.resolved"
	EventDomainStarted   EventKind = "domain.started"
	EventDomainDone      EventKind = "domain.done"
	EventFinished        EventKind = "upload.finished"
)

// UploadEvent is a progress notification for interactive front-ends.
type UploadEvent struct {
	Kind    EventKind
	Domain  string
	Index   int
	Total   int
	Result  *DomainResult
	Message string
}
