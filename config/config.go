package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
)

// EnvPrefix prefixes environment overrides, e.g. SAABA_PORT or SAABA_READ_TIMEOUT
const EnvPrefix = "SAABA"

// Config holds all application configuration.
type Config struct {
	Host           string `config:"host"`
	Port           int    `config:"port"`
	ReadTimeout    int    `config:"read.timeout"`  // seconds
	WriteTimeout   int    `config:"write.timeout"` // seconds
	MaxHeaderBytes int    `config:"max.header.bytes"`
	ReusePort      bool   `config:"reuse.port"`
	Env            string `config:"env"`
	LogLevel       string `config:"log.level"`
	StaticDir      string `config:"static.dir"`

	// Set only from the JSON file or the environment
	MonitorEnabled bool   `config:"-"` // monitor.enabled, default true
	CORSOrigin     string `config:"-"` // cors.origin, empty disables CORS
	RateLimit      int    `config:"-"` // rate.limit in requests per second, 0 disables
}

// Addr returns host:port
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// IsDevelopment reports whether Env is development
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// New loads configuration from the process flags and environment.
func New() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}

// Load parses args as flags, then applies the optional JSON file named by
// -config and finally SAABA_* environment variables on top.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	var file string

	fs := flag.NewFlagSet("saaba", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", "0.0.0.0", "HTTP server host")
	fs.IntVar(&cfg.Port, "port", 3333, "HTTP server port")
	fs.IntVar(&cfg.ReadTimeout, "read-timeout", 10, "HTTP read timeout (seconds)")
	fs.IntVar(&cfg.WriteTimeout, "write-timeout", 10, "HTTP write timeout (seconds)")
	fs.IntVar(&cfg.MaxHeaderBytes, "max-header-bytes", 1<<20, "Maximum request head size")
	fs.BoolVar(&cfg.ReusePort, "reuse-port", false, "Set SO_REUSEPORT on the listener")
	fs.StringVar(&cfg.Env, "env", "development", "Environment (development/production)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (trace/debug/info/warn/error)")
	fs.StringVar(&cfg.StaticDir, "static-dir", "", "Directory mounted under /static")
	fs.StringVar(&file, "config", "", "Optional JSON configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	m := NewManager()
	if file != "" {
		if err := m.LoadFromJSON(file); err != nil {
			return nil, err
		}
	}
	m.LoadFromEnv(EnvPrefix)

	if err := m.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("apply configuration: %w", err)
	}

	cfg.MonitorEnabled = m.GetBool("monitor.enabled", true)
	cfg.CORSOrigin = m.GetString("cors.origin")
	cfg.RateLimit = m.GetInt("rate.limit")

	return cfg, nil
}
