package domain

import (
	"fmt"
	"strings"
)

// LocatorStrategy tells the browser adapter how to interpret a Locator value.
type LocatorStrategy string

const (
	ByClass LocatorStrategy = "class"
	ByXPath LocatorStrategy = "xpath"
	ByQuery LocatorStrategy = "css"
)

// Locator identifies a UI element (a readiness marker or an input).
type Locator struct {
	By    LocatorStrategy
	Value string
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// ParseLocatorStrategy accepts the strategy names used in houndup.yaml.
func ParseLocatorStrategy(s string) (LocatorStrategy, error) {
	switch LocatorStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case ByClass:
		return ByClass, nil
	case ByXPath:
		return ByXPath, nil
	case ByQuery, "query", "selector":
		return ByQuery, nil
	default:
		return "", fmt.Errorf("unsupported locator strategy %q", s)
	}
}

// ClearInputScript returns the script that resets the value of the input matched by
// the CSS selector, so a later upload does not resubmit the previous file.
func ClearInputScript(cssSelector string) string {
	return fmt.Sprintf("document.querySelector(%q).value = ''", cssSelector)
}
