package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Catalog configuration
	CatalogDir string `long:"catalog-dir" env:"CATALOG_DIR" default:"./catalog" description:"Directory containing brand post catalog files"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./data/microbrands.db" description:"Path of the sqlite catalog snapshot"`

	// HTTP configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://brands.example.com)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key guarding session endpoints (optional)"`

	// Session configuration
	SessionTTL           int `long:"session-ttl" env:"SESSION_TTL" default:"1800" description:"Idle filter session lifetime in seconds"`
	SessionSweepInterval int `long:"session-sweep-interval" env:"SESSION_SWEEP_INTERVAL" default:"60" description:"Expired session sweep interval in seconds"`
	MaxSessions          int `long:"max-sessions" env:"MAX_SESSIONS" default:"10000" description:"Maximum number of live filter sessions"`
	SessionCreateRate    int `long:"session-create-rate" env:"SESSION_CREATE_RATE" default:"20" description:"Maximum new filter sessions per second (0 disables the cap)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Kolkata)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads an optional .env file, then parses flags and environment.
// It returns nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		CatalogDir:           raw.CatalogDir,
		DBPath:               raw.DBPath,
		Port:                 raw.Port,
		BaseUrl:              raw.BaseUrl,
		APIAccessKey:         raw.APIAccessKey,
		SessionTTL:           time.Duration(raw.SessionTTL) * time.Second,
		SessionSweepInterval: time.Duration(raw.SessionSweepInterval) * time.Second,
		MaxSessions:          raw.MaxSessions,
		SessionCreateRate:    raw.SessionCreateRate,
		Timezone:             raw.Timezone,
		Debug:                raw.Debug,
		Version:              GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	nonPositiveFields := map[string]int64{
		"session TTL":            int64(c.SessionTTL),
		"session sweep interval": int64(c.SessionSweepInterval),
		"max sessions":           int64(c.MaxSessions),
	}

	for fieldName, fieldValue := range nonPositiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	// Zero turns the session creation cap off.
	if c.SessionCreateRate < 0 {
		return fmt.Errorf("session create rate must not be negative")
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
