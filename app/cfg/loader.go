package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://feed.polysend.io)"`

	// Storage configuration
	DatabasePath string `long:"database" env:"DATABASE_PATH" default:"./notifeed.db" description:"Path to the SQLite database file"`

	// Admin API configuration
	AdminToken string `long:"token" env:"ADMIN_TOKEN" description:"Bearer token for admin endpoints (required)" required:"true"`

	// Channel seed configuration
	SeedFile string `long:"seed-file" env:"SEED_FILE" description:"Optional YAML file overriding the default channel settings seed"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses configuration from command-line flags and environment
// variables. It returns (nil, nil) when help was requested. The returned
// value is passed explicitly to whatever needs it; there is no package-level
// configuration state.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:         raw.Port,
		BaseUrl:      raw.BaseUrl,
		DatabasePath: raw.DatabasePath,
		AdminToken:   raw.AdminToken,
		SeedFile:     raw.SeedFile,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	return cfg, nil
}

// PublicUrl returns the base URL clients should use to reach the service,
// falling back to localhost when no public base URL is configured.
func (c *Cfg) PublicUrl() string {
	if c.BaseUrl != "" {
		return c.BaseUrl
	}
	return "http://localhost:" + c.Port
}
