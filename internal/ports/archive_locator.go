package ports

import "github.com/doubley612/bloodhound-automation/internal/domain"

// ArchiveLocator finds the newest result archive for a domain. A missing archive
// is reported with found=false, never as an error.
type ArchiveLocator interface {
	LatestArchive(domainName string) (archive domain.Archive, found bool)
}
