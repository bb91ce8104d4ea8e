package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyOrganization error if no organization short name is configured.
	ErrEmptyOrganization = errors.New("toml config organization can not be empty")

	// ErrUnknownGormEngine error if DB.GormEngine is not one of mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine is not supported")
)
