package chromebrowser

import (
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

type queryKind int

const (
	queryCSS queryKind = iota
	queryXPath
)

// selectorFor maps a Locator to a chromedp selector. Class names become CSS
// class selectors; "a b" matches elements carrying both classes.
func selectorFor(loc domain.Locator) (string, queryKind, error) {
	v := strings.TrimSpace(loc.Value)
	if v == "" {
		return "", 0, fmt.Errorf("empty locator value")
	}
	switch loc.By {
	case domain.ByClass:
		return "." + strings.Join(strings.Fields(v), "."), queryCSS, nil
	case domain.ByXPath:
		return v, queryXPath, nil
	case domain.ByQuery:
		return v, queryCSS, nil
	default:
		return "", 0, fmt.Errorf("unsupported locator strategy %q", loc.By)
	}
}

// one returns the option matching a single node.
func (k queryKind) one() chromedp.QueryOption {
	if k == queryXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// all returns the option matching every node.
func (k queryKind) all() chromedp.QueryOption {
	if k == queryXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQueryAll
}
