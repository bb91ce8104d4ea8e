// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON is the environment variable holding a JSON document merged over main.toml.
	EnvConfigJSON = "GO_MEMBERSHIP_CONFIG_JSON"

	defaultShutDownTime     = 5
	defaultSessionExpiry    = time.Hour
	defaultReplayExpiry     = 10 * time.Minute
	defaultRoleExpirySpec   = "@daily"
	invalidConfigErrMessage = "invalid config"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to merge config from env "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without and fills defaults.
func validate(c *Config) error {
	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidConfigErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidConfigErrMessage)
	}

	if c.Organization == "" {
		return errors.Wrap(ErrEmptyOrganization, invalidConfigErrMessage)
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineMySQL
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrapf(ErrUnknownGormEngine, "%s: %q", invalidConfigErrMessage, c.DB.GormEngine)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime // seconds
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.Session.ReplayExpiryTime == 0 {
		c.Webserver.Session.ReplayExpiryTime = defaultReplayExpiry
	}

	if c.Jobs.RoleExpirySpec == "" {
		c.Jobs.RoleExpirySpec = defaultRoleExpirySpec
	}

	return nil
}
