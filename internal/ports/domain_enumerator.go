package ports

import "context"

// DomainEnumerator lists the domains of the current forest.
// ok=false signals that the underlying tool failed.
type DomainEnumerator interface {
	Domains(ctx context.Context) (domains []string, ok bool)
}
