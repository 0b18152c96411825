package config

// YAMLConfig mirrors houndup.yaml. Pointer fields distinguish "unset" from zero values.
type YAMLConfig struct {
	Binaries    YAMLBinaries    `yaml:"binaries"`
	Browser     YAMLBrowser     `yaml:"browser"`
	Credentials YAMLCredentials `yaml:"credentials"`
	ResultsDir  string          `yaml:"results_dir"`
	Domains     YAMLDomains     `yaml:"domains"`
	UI          YAMLUI          `yaml:"ui"`
	Timing      YAMLTiming      `yaml:"timing"`
	Paths       YAMLPaths       `yaml:"paths"`
}

type YAMLBinaries struct {
	App    string `yaml:"app"`
	Driver string `yaml:"driver"`
}

type YAMLBrowser struct {
	Headless            *bool    `yaml:"headless"`
	RemoteDebuggingPort *int     `yaml:"remote_debugging_port"`
	UserDataDir         string   `yaml:"user_data_dir"`
	ExtraFlags          []string `yaml:"extra_flags"`
	RemoteURL           string   `yaml:"remote_url"`
	URL                 string   `yaml:"url"`
}

type YAMLCredentials struct {
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	PasswordEnv string `yaml:"password_env"`
}

type YAMLDomains struct {
	Default  []string `yaml:"default"`
	Command  []string `yaml:"command"`
	Format   string   `yaml:"format"`
	JSONPath string   `yaml:"jsonpath"`
}

type YAMLLocator struct {
	By    string `yaml:"by"`
	Value string `yaml:"value"`
}

type YAMLUI struct {
	UploadMarker     *YAMLLocator `yaml:"upload_marker"`
	LoginMarker      *YAMLLocator `yaml:"login_marker"`
	UploadField      *YAMLLocator `yaml:"upload_field"`
	UsernameField    *YAMLLocator `yaml:"username_field"`
	PasswordField    *YAMLLocator `yaml:"password_field"`
	UploadFieldQuery string       `yaml:"upload_field_query"`
}

// YAMLTiming holds Go duration strings ("10s", "1m").
type YAMLTiming struct {
	SettleDelay    string `yaml:"settle_delay"`
	PollInterval   string `yaml:"poll_interval"`
	IngestInterval string `yaml:"ingest_interval"`
	Cooldown       string `yaml:"cooldown"`
	RequiredHits   *int   `yaml:"required_hits"`
	MaxAttempts    *int   `yaml:"max_attempts"`
}

type YAMLPaths struct {
	ReportsDir string `yaml:"reports_dir"`
	LogsDir    string `yaml:"logs_dir"`
}
