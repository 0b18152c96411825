package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

// MapConfig validates the DTO and applies it over domain.DefaultConfig.
// Relative results_dir values are resolved against the config file's directory.
func MapConfig(path string, y YAMLConfig, lookupEnv func(string) (string, bool)) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	base := filepath.Dir(path)

	// binaries / browser
	cfg.Binaries.App = strings.TrimSpace(y.Binaries.App)
	cfg.Binaries.Driver = strings.TrimSpace(y.Binaries.Driver)
	cfg.Browser.RemoteURL = strings.TrimSpace(y.Browser.RemoteURL)
	cfg.Browser.URL = strings.TrimSpace(y.Browser.URL)
	if cfg.Binaries.App == "" && cfg.Browser.RemoteURL == "" {
		return cfg, invalidField(path, "binaries.app", "app binary is required unless browser.remote_url is set")
	}

	if y.Browser.Headless != nil {
		cfg.Browser.Headless = *y.Browser.Headless
	}
	if y.Browser.RemoteDebuggingPort != nil {
		p := *y.Browser.RemoteDebuggingPort
		if p < 1 || p > 65535 {
			return cfg, invalidField(path, "browser.remote_debugging_port", fmt.Sprintf("port %d out of range", p))
		}
		cfg.Browser.RemoteDebuggingPort = p
	}
	if v := strings.TrimSpace(y.Browser.UserDataDir); v != "" {
		cfg.Browser.UserDataDir = v
	}
	for i, f := range y.Browser.ExtraFlags {
		if !strings.HasPrefix(strings.TrimSpace(f), "--") {
			return cfg, invalidField(path, fmt.Sprintf("browser.extra_flags[%d]", i), "flags must start with --")
		}
		cfg.Browser.ExtraFlags = append(cfg.Browser.ExtraFlags, strings.TrimSpace(f))
	}

	// credentials
	cfg.Credentials.User = y.Credentials.User
	cfg.Credentials.Password = y.Credentials.Password
	// an explicit password (usually from houndup.local.yaml) wins over password_env
	if env := strings.TrimSpace(y.Credentials.PasswordEnv); env != "" && cfg.Credentials.Password == "" {
		if v, ok := lookupEnv(env); ok {
			cfg.Credentials.Password = v
		}
	}

	// results
	rd := strings.TrimSpace(y.ResultsDir)
	if rd == "" {
		return cfg, invalidField(path, "results_dir", "results_dir is required")
	}
	if !filepath.IsAbs(rd) {
		rd = filepath.Join(base, rd)
	}
	cfg.ResultsDir = filepath.Clean(rd)

	if err := mapDomains(path, y.Domains, &cfg.Domains); err != nil {
		return cfg, err
	}
	if err := mapUI(path, y.UI, &cfg.UI); err != nil {
		return cfg, err
	}
	if err := mapTiming(path, y.Timing, &cfg.Timing); err != nil {
		return cfg, err
	}

	if v := strings.TrimSpace(y.Paths.ReportsDir); v != "" {
		cfg.Paths.ReportsDir = v
	}
	if v := strings.TrimSpace(y.Paths.LogsDir); v != "" {
		cfg.Paths.LogsDir = v
	}

	return cfg, nil
}

func mapDomains(path string, y YAMLDomains, out *domain.DomainsConfig) error {
	out.Default = domain.NormalizeDomains(y.Default)
	if len(y.Command) > 0 {
		if strings.TrimSpace(y.Command[0]) == "" {
			return invalidField(path, "domains.command", "command name is empty")
		}
		out.Command = append([]string(nil), y.Command...)
	}
	if f := strings.ToLower(strings.TrimSpace(y.Format)); f != "" {
		switch f {
		case domain.DomainsFormatNLTest, domain.DomainsFormatJSON:
			out.Format = f
		default:
			return invalidField(path, "domains.format", fmt.Sprintf("unsupported format %q", y.Format))
		}
	}
	out.JSONPath = strings.TrimSpace(y.JSONPath)
	if out.Format == domain.DomainsFormatJSON && out.JSONPath == "" {
		return invalidField(path, "domains.jsonpath", "jsonpath is required when format is json")
	}
	return nil
}

func mapUI(path string, y YAMLUI, out *domain.UIConfig) error {
	fields := []struct {
		name string
		in   *YAMLLocator
		dst  *domain.Locator
	}{
		{"ui.upload_marker", y.UploadMarker, &out.UploadMarker},
		{"ui.login_marker", y.LoginMarker, &out.LoginMarker},
		{"ui.upload_field", y.UploadField, &out.UploadField},
		{"ui.username_field", y.UsernameField, &out.UsernameField},
		{"ui.password_field", y.PasswordField, &out.PasswordField},
	}
	for _, f := range fields {
		if f.in == nil {
			continue
		}
		loc, err := mapLocator(*f.in)
		if err != nil {
			return invalidField(path, f.name, err.Error())
		}
		*f.dst = loc
	}
	if v := strings.TrimSpace(y.UploadFieldQuery); v != "" {
		out.UploadFieldQuery = v
	}
	return nil
}

func mapLocator(y YAMLLocator) (domain.Locator, error) {
	by, err := domain.ParseLocatorStrategy(y.By)
	if err != nil {
		return domain.Locator{}, err
	}
	v := strings.TrimSpace(y.Value)
	if v == "" {
		return domain.Locator{}, fmt.Errorf("value is required")
	}
	return domain.Locator{By: by, Value: v}, nil
}

func mapTiming(path string, y YAMLTiming, out *domain.TimingConfig) error {
	durations := []struct {
		name string
		in   string
		dst  *time.Duration
	}{
		{"timing.settle_delay", y.SettleDelay, &out.SettleDelay},
		{"timing.poll_interval", y.PollInterval, &out.PollInterval},
		{"timing.ingest_interval", y.IngestInterval, &out.IngestInterval},
		{"timing.cooldown", y.Cooldown, &out.Cooldown},
	}
	for _, d := range durations {
		if strings.TrimSpace(d.in) == "" {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.in))
		if err != nil {
			return invalidField(path, d.name, err.Error())
		}
		if v < 0 {
			return invalidField(path, d.name, "duration must not be negative")
		}
		*d.dst = v
	}

	if y.RequiredHits != nil {
		if *y.RequiredHits < 1 {
			return invalidField(path, "timing.required_hits", "must be at least 1")
		}
		out.RequiredHits = *y.RequiredHits
	}
	if y.MaxAttempts != nil {
		if *y.MaxAttempts < 0 {
			return invalidField(path, "timing.max_attempts", "must not be negative (0 waits forever)")
		}
		out.MaxAttempts = *y.MaxAttempts
	}
	return nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
