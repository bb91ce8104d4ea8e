package config

import (
	"time"

	"github.com/GoMembership/GoMembership/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	// ReplayExpiryTime is how long a rejected form submission is kept for redisplay.
	ReplayExpiryTime time.Duration
}

// Jobs holds the settings of the background scheduler.
type Jobs struct {
	Enabled bool
	// RoleExpirySpec is the cron spec of the job deactivating roles past their end date.
	RoleExpirySpec string
}

// Config overall data structure.
type Config struct {
	DevMode      bool // enable dev mode for development
	DB           DB
	Log          logger.Log
	Title        string
	Organization string // short name of the organization served by this instance
	Webserver    Webserver
	Jobs         Jobs
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic        bool    // enable static file browsing (for development purposes only)
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Session             Session // session settings
}
