package crawlkit

import "time"

// Duration is a time.Duration that unmarshals from strings like "500ms"
// or "2s" in YAML and other text-based configuration.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return Errorf(ECONFIG, "invalid duration %q: %v", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full set of options recognized by a crawl run.
type Config struct {
	// Delay is the politeness pause between successive fetches.
	Delay Duration `yaml:"delay"`

	// MaxRetries is the total number of attempts per request. Must be >= 1.
	MaxRetries int `yaml:"max_retries"`

	// Timeout bounds each individual request attempt.
	Timeout Duration `yaml:"timeout"`

	// UseProxy enables random proxy selection from ProxyList per attempt.
	UseProxy bool `yaml:"use_proxy"`

	// ProxyList holds proxy endpoints to choose from.
	ProxyList []string `yaml:"proxy_list"`

	// MaxPages is the page budget for a run. Must be >= 1.
	MaxPages int `yaml:"max_pages"`

	// AllowedDomains are host substrings admitting candidate URLs.
	// When empty, the start URL's host is used.
	AllowedDomains []string `yaml:"allowed_domains"`

	// ExcludePatterns are regex strings rejecting candidate URLs.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// DataSelector selects the elements to extract in a paginated crawl.
	DataSelector string `yaml:"data_selector"`

	// NextSelector locates the "next page" control. Mutually exclusive
	// with PageParam.
	NextSelector string `yaml:"next_selector"`

	// PageParam is the numeric query parameter to increment for
	// pagination. Mutually exclusive with NextSelector.
	PageParam string `yaml:"page_param"`

	// OutputFormat is "json" or "csv".
	OutputFormat string `yaml:"output_format"`

	// OutputDir is the directory results are written into.
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Delay:        Duration(1 * time.Second),
		MaxRetries:   3,
		Timeout:      Duration(10 * time.Second),
		MaxPages:     100,
		OutputFormat: string(FormatJSON),
		OutputDir:    "output",
	}
}

// Validate checks the configuration before any work begins. Violations
// are configuration errors and abort the run immediately.
func (c *Config) Validate() error {
	if c.MaxRetries < 1 {
		return Errorf(ECONFIG, "max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.MaxPages < 1 {
		return Errorf(ECONFIG, "max pages must be at least 1, got %d", c.MaxPages)
	}
	if c.NextSelector != "" && c.PageParam != "" {
		return Errorf(ECONFIG, "next selector and page parameter are mutually exclusive")
	}
	if c.UseProxy && len(c.ProxyList) == 0 {
		return Errorf(ECONFIG, "proxy use enabled but proxy list is empty")
	}
	if _, err := CompilePatterns(c.ExcludePatterns); err != nil {
		return err
	}
	if _, err := ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	return nil
}
