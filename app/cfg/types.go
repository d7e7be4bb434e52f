package cfg

import "time"

type Cfg struct {
	// Catalog configuration
	CatalogDir string
	DBPath     string

	// HTTP configuration
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Session configuration
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	MaxSessions          int
	SessionCreateRate    int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
