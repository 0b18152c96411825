package ports

import "github.com/doubley612/bloodhound-automation/internal/domain"

// ReportStore persists upload reports.
type ReportStore interface {
	SaveReport(report domain.UploadReport) (id string, err error)
}
