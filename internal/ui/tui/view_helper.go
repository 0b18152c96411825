package tui

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// renderResultLine keeps the archive name within width (0 = unbounded).
func renderResultLine(t Theme, r domain.DomainResult, width int) string {
	if r.Status != domain.StatusUploaded {
		return t.Skipped.Render("  – "+r.Domain) + t.Help.Render("  skipped: "+r.Reason)
	}

	name := filepath.Base(r.Archive)
	if width > 0 {
		name = clampString(name, width-utf8.RuneCountInString(r.Domain)-16)
	}
	return t.Success.Render("  ✓ "+r.Domain) + "  " + name +
		t.Help.Render("  "+formatElapsed(time.Duration(r.DurationMS)*time.Millisecond))
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
