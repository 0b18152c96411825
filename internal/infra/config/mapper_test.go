package config

import (
	"strings"
	"testing"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

func noEnv(string) (string, bool) { return "", false }

func validDTO() YAMLConfig {
	return YAMLConfig{
		Binaries:   YAMLBinaries{App: "/opt/bh/BloodHound"},
		ResultsDir: "/data/results",
	}
}

func TestMapConfigValidation(t *testing.T) {
	port := 70000
	hits := 0
	attempts := -1

	cases := []struct {
		name  string
		edit  func(*YAMLConfig)
		field string
	}{
		{"missing app", func(y *YAMLConfig) { y.Binaries.App = "" }, "binaries.app"},
		{"missing results", func(y *YAMLConfig) { y.ResultsDir = " " }, "results_dir"},
		{"bad port", func(y *YAMLConfig) { y.Browser.RemoteDebuggingPort = &port }, "browser.remote_debugging_port"},
		{"bad flag", func(y *YAMLConfig) { y.Browser.ExtraFlags = []string{"headless"} }, "browser.extra_flags[0]"},
		{"bad format", func(y *YAMLConfig) { y.Domains.Format = "xml" }, "domains.format"},
		{"json without path", func(y *YAMLConfig) { y.Domains.Format = "json" }, "domains.jsonpath"},
		{"empty command", func(y *YAMLConfig) { y.Domains.Command = []string{""} }, "domains.command"},
		{"bad locator", func(y *YAMLConfig) { y.UI.LoginMarker = &YAMLLocator{By: "id", Value: "x"} }, "ui.login_marker"},
		{"empty locator", func(y *YAMLConfig) { y.UI.UploadField = &YAMLLocator{By: "xpath"} }, "ui.upload_field"},
		{"negative duration", func(y *YAMLConfig) { y.Timing.Cooldown = "-1s" }, "timing.cooldown"},
		{"zero hits", func(y *YAMLConfig) { y.Timing.RequiredHits = &hits }, "timing.required_hits"},
		{"negative attempts", func(y *YAMLConfig) { y.Timing.MaxAttempts = &attempts }, "timing.max_attempts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			y := validDTO()
			tc.edit(&y)
			_, err := MapConfig("houndup.yaml", y, noEnv)
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected %s in error, got %v", tc.field, err)
			}
		})
	}
}

func TestMapConfigRemoteWithoutApp(t *testing.T) {
	y := validDTO()
	y.Binaries.App = ""
	y.Browser.RemoteURL = "ws://127.0.0.1:9222/devtools/browser/abc"

	cfg, err := MapConfig("houndup.yaml", y, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Browser.RemoteURL == "" {
		t.Fatal("expected remote url to map")
	}
}

func TestMapConfigDefaults(t *testing.T) {
	cfg, err := MapConfig("houndup.yaml", validDTO(), noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := domain.DefaultConfig()
	if cfg.Timing != def.Timing {
		t.Fatalf("expected default timing, got %+v", cfg.Timing)
	}
	if cfg.UI != def.UI {
		t.Fatalf("expected default ui, got %+v", cfg.UI)
	}
	if cfg.Domains.Format != domain.DomainsFormatNLTest {
		t.Fatalf("expected nltest format, got %q", cfg.Domains.Format)
	}
	if cfg.Credentials.Password != "" {
		t.Fatal("expected empty password when nothing is configured")
	}
}

func TestMapConfigPasswordEnvUnset(t *testing.T) {
	y := validDTO()
	y.Credentials.PasswordEnv = "HOUNDUP_MISSING"

	cfg, err := MapConfig("houndup.yaml", y, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Credentials.Password != "" {
		t.Fatalf("expected empty password, got %q", cfg.Credentials.Password)
	}
}

func TestMapConfigExplicitPasswordWins(t *testing.T) {
	y := validDTO()
	y.Credentials.Password = "explicit"
	y.Credentials.PasswordEnv = "HOUNDUP_PASSWORD"

	env := func(string) (string, bool) { return "from-env", true }
	cfg, err := MapConfig("houndup.yaml", y, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Credentials.Password != "explicit" {
		t.Fatalf("expected explicit password, got %q", cfg.Credentials.Password)
	}
}
