package domain

import "time"

// Config represents the houndup configuration loaded from houndup.yaml.
// It is immutable once loaded.
type Config struct {
	Binaries    BinariesConfig
	Browser     BrowserConfig
	Credentials Credentials
	ResultsDir  string
	Domains     DomainsConfig
	UI          UIConfig
	Timing      TimingConfig
	Paths       PathsConfig
}

type BinariesConfig struct {
	// App is the controlled application (an Electron/Chromium binary).
	App string
	// Driver is an optional helper binary; it is only killed on startup.
	Driver string
}

type BrowserConfig struct {
	Headless            bool
	RemoteDebuggingPort int
	UserDataDir         string
	ExtraFlags          []string
	// RemoteURL attaches to an already running DevTools endpoint instead of launching.
	RemoteURL string
	// URL is navigated to after launch when set (web deployments of the UI).
	URL string
}

type Credentials struct {
	User     string
	Password string
}

type DomainsConfig struct {
	Default  []string
	Command  []string
	Format   string // "nltest" or "json"
	JSONPath string
}

type UIConfig struct {
	UploadMarker  Locator
	LoginMarker   Locator
	UploadField   Locator
	UsernameField Locator
	PasswordField Locator
	// UploadFieldQuery is the CSS selector used to reset the upload input.
	UploadFieldQuery string
}

type TimingConfig struct {
	SettleDelay    time.Duration
	PollInterval   time.Duration
	IngestInterval time.Duration
	Cooldown       time.Duration
	RequiredHits   int
	// MaxAttempts bounds every readiness wait; 0 waits forever.
	MaxAttempts int
}

type PathsConfig struct {
	ReportsDir string
	LogsDir    string
}

// DomainsFormatNLTest and DomainsFormatJSON select how enumeration output is parsed.
const (
	DomainsFormatNLTest = "nltest"
	DomainsFormatJSON   = "json"
)

// DefaultConfig provides sane defaults if houndup.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Browser: BrowserConfig{
			Headless:            true,
			RemoteDebuggingPort: 9222,
			UserDataDir:         `%APPDATA%\BloodHound`,
		},
		Domains: DomainsConfig{
			Command: []string{"nltest", "/domain_trusts"},
			Format:  DomainsFormatNLTest,
		},
		UI: UIConfig{
			UploadMarker:     Locator{By: ByClass, Value: "fa-tasks"},
			LoginMarker:      Locator{By: ByClass, Value: "green-icon-color"},
			UploadField:      Locator{By: ByXPath, Value: "//input[@type='file']"},
			UsernameField:    Locator{By: ByXPath, Value: "//form/div/div[2]/input[@class='form-control login-text']"},
			PasswordField:    Locator{By: ByXPath, Value: "//form/div/div[3]/input[@class='form-control login-text']"},
			UploadFieldQuery: "input[type='file']",
		},
		Timing: TimingConfig{
			SettleDelay:    10 * time.Second,
			PollInterval:   10 * time.Second,
			IngestInterval: 60 * time.Second,
			Cooldown:       5 * time.Second,
			RequiredHits:   3,
			MaxAttempts:    360,
		},
		Paths: PathsConfig{
			ReportsDir: "reports",
			LogsDir:    ".houndup/logs",
		},
	}
}
