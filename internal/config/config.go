package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

const (
	DefaultAddr            = "0.0.0.0:8001"
	DefaultPapersDir       = "papers"
	DefaultLogLevel        = "info"
	DefaultReadTimeout     = "15s"
	DefaultWriteTimeout    = "15s"
	DefaultIdleTimeout     = "60s"
	DefaultShutdownTimeout = "10s"
	DefaultDatadogService  = "readable-api"
)

// DefaultAllowedOrigins is the frontend the API is served to by default.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

// Config is the configuration for the Readable Research API.
type Config struct {
	// LogLevel is the minimum level logged: trace, debug, info, warn or error.
	LogLevel string `hcl:"log_level,optional"`

	// LogFormat is "standard" (default) or "json".
	LogFormat string `hcl:"log_format,optional"`

	// Server configures the HTTP listener.
	Server *Server `hcl:"server,block"`

	// Papers configures where paper documents are read from.
	Papers *Papers `hcl:"papers,block"`

	// CORS configures cross-origin access for the frontend.
	CORS *CORS `hcl:"cors,block"`

	// Datadog configures optional APM tracing.
	Datadog *Datadog `hcl:"datadog,block"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string `hcl:"addr,optional"`
	ReadTimeout     string `hcl:"read_timeout,optional"`
	WriteTimeout    string `hcl:"write_timeout,optional"`
	IdleTimeout     string `hcl:"idle_timeout,optional"`
	ShutdownTimeout string `hcl:"shutdown_timeout,optional"`
}

// Papers configures the storage root.
type Papers struct {
	// Dir is the directory containing <id>.json files. Relative paths are
	// resolved against the directory of the config file.
	Dir string `hcl:"dir,optional"`
}

// CORS configures the cross-origin middleware.
type CORS struct {
	// AllowedOrigins lists origins (scheme://host[:port]) allowed to call the
	// API from a browser. "*" allows any origin.
	AllowedOrigins []string `hcl:"allowed_origins,optional"`

	// AllowCredentials controls Access-Control-Allow-Credentials.
	AllowCredentials *bool `hcl:"allow_credentials,optional"`
}

// Datadog configures APM tracing.
type Datadog struct {
	Enabled bool   `hcl:"enabled,optional"`
	Service string `hcl:"service,optional"`
	Env     string `hcl:"env,optional"`
}

// Timeouts holds the parsed server durations.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

// NewConfig parses an HCL configuration file, applies defaults and validates
// the result.
func NewConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	var cfg Config
	if err := hclsimple.DecodeFile(filename, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.applyDefaults()

	// Resolve the papers directory relative to the config file so the same
	// config works regardless of the working directory.
	if !filepath.IsAbs(cfg.Papers.Dir) {
		absConfig, err := filepath.Abs(filename)
		if err != nil {
			return nil, fmt.Errorf("error resolving configuration path: %w", err)
		}
		cfg.Papers.Dir = filepath.Join(filepath.Dir(absConfig), cfg.Papers.Dir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// GenerateSimplifiedConfig returns a configuration serving papers from
// papersDir with every other setting at its default.
func GenerateSimplifiedConfig(papersDir string) *Config {
	cfg := &Config{
		Papers: &Papers{Dir: papersDir},
	}
	cfg.applyDefaults()
	return cfg
}

// WriteConfig writes cfg to filename as HCL.
func WriteConfig(cfg *Config, filename string) error {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(cfg, f.Body())

	if err := os.WriteFile(filename, f.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = "standard"
	}

	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Papers == nil {
		c.Papers = &Papers{}
	}
	if c.Papers.Dir == "" {
		c.Papers.Dir = DefaultPapersDir
	}

	if c.CORS == nil {
		c.CORS = &CORS{}
	}
	if c.CORS.AllowedOrigins == nil {
		c.CORS.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if c.CORS.AllowCredentials == nil {
		allow := true
		c.CORS.AllowCredentials = &allow
	}

	if c.Datadog == nil {
		c.Datadog = &Datadog{}
	}
	if c.Datadog.Service == "" {
		c.Datadog.Service = DefaultDatadogService
	}
}

// Validate checks the configuration after defaults have been applied.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel,
			validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("standard", "json")),
		validation.Field(&c.Server, validation.Required),
		validation.Field(&c.Papers, validation.Required),
		validation.Field(&c.CORS, validation.Required),
	)
}

// Validate checks the server block.
func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.ReadTimeout, validation.By(isDuration)),
		validation.Field(&s.WriteTimeout, validation.By(isDuration)),
		validation.Field(&s.IdleTimeout, validation.By(isDuration)),
		validation.Field(&s.ShutdownTimeout, validation.By(isDuration)),
	)
}

// Validate checks the papers block.
func (p Papers) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Dir, validation.Required),
	)
}

// Validate checks the cors block.
func (c CORS) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AllowedOrigins, validation.Each(validation.By(isOrigin))),
	)
}

// Timeouts parses the server durations. It assumes the config has been
// validated.
func (s *Server) Timeouts() Timeouts {
	return Timeouts{
		Read:     mustDuration(s.ReadTimeout),
		Write:    mustDuration(s.WriteTimeout),
		Idle:     mustDuration(s.IdleTimeout),
		Shutdown: mustDuration(s.ShutdownTimeout),
	}
}

func isDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration such as 10s")
	}
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func isOrigin(value interface{}) error {
	s, _ := value.(string)
	if s == "*" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an origin such as http://localhost:3000")
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("must not contain a path, query or fragment")
	}
	return nil
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
