package domain

import (
	"sort"
	"strings"
	"time"
)

// ArchiveExt is the extension of collector result archives.
const ArchiveExt = ".zip"

// Archive is a collector result file on disk.
type Archive struct {
	Path      string
	Name      string
	CreatedAt time.Time
}

// SelectLatestArchive returns the newest archive whose file name ends with
// "_<domain>.zip", where the domain token is matched in its all-lower or all-upper form.
// Archives are ordered by creation time, newest first; ties fall back to the name
// in descending order so the choice does not depend on listing order.
func SelectLatestArchive(archives []Archive, domainName string) (Archive, bool) {
	name := strings.TrimSpace(domainName)
	if name == "" {
		return Archive{}, false
	}

	sorted := make([]Archive, len(archives))
	copy(sorted, archives)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].Name > sorted[j].Name
	})

	lower := "_" + strings.ToLower(name) + ArchiveExt
	upper := "_" + strings.ToUpper(name) + ArchiveExt
	for _, a := range sorted {
		if strings.HasSuffix(a.Name, lower) || strings.HasSuffix(a.Name, upper) {
			return a, true
		}
	}
	return Archive{}, false
}
