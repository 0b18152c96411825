package chromebrowser

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

// flag is one command-line switch; Value is either a bool or a string.
type flag struct {
	Name  string
	Value any
}

// launchFlags returns the fixed switch set followed by the configured extras.
func launchFlags(cfg domain.BrowserConfig, lookup func(string) (string, bool)) []flag {
	flags := []flag{
		{"no-sandbox", true},
		{"disable-setuid-sandbox", true},
		{"disable-gpu", true},
		{"remote-debugging-port", strconv.Itoa(cfg.RemoteDebuggingPort)},
	}
	if cfg.Headless {
		flags = append([]flag{{"headless", true}}, flags...)
	}
	if dir := expandEnv(cfg.UserDataDir, lookup); dir != "" {
		flags = append(flags, flag{"user-data-dir", dir})
	}
	for _, raw := range cfg.ExtraFlags {
		if f, ok := parseFlag(raw); ok {
			flags = append(flags, f)
		}
	}
	return flags
}

// parseFlag turns "--name" or "--name=value" into a flag.
func parseFlag(raw string) (flag, bool) {
	s := strings.TrimLeft(strings.TrimSpace(raw), "-")
	if s == "" {
		return flag{}, false
	}
	name, value, hasValue := strings.Cut(s, "=")
	if !hasValue {
		return flag{Name: name, Value: true}, true
	}
	return flag{Name: name, Value: value}, true
}

var windowsVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// expandEnv expands %VAR% and $VAR / ${VAR}. Unknown %VAR% references are kept verbatim.
func expandEnv(s string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	s = windowsVar.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := lookup(m[1 : len(m)-1]); ok {
			return v
		}
		return m
	})
	return os.Expand(s, func(name string) string {
		v, _ := lookup(name)
		return v
	})
}
