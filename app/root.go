// Package app implements the command line of GoMembership.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvConfigPath is the environment variable read when --config is not given.
	EnvConfigPath = "GOMEMBERSHIP_CONFIG"

	keyConfig         = "config"
	defaultConfigPath = "./etc/"
)

// settings holds the values of flags which may also come from the environment.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "gomembership",
	Short: "GoMembership is a web-based membership management for clubs and associations",
	Long: `GoMembership is a web-based membership management for clubs and associations.
Roles group the members of an organization and grant them rights.`,
	Args:         cobra.OnlyValidArgs,
	SilenceUsage: true,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, defaultConfigPath,
		"directory of main.toml (env "+EnvConfigPath+")")

	_ = settings.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig))
	_ = settings.BindEnv(keyConfig, EnvConfigPath)
	settings.SetDefault(keyConfig, defaultConfigPath)
}

// configPath is the configuration directory with a trailing slash.
func configPath() string {
	p := settings.GetString(keyConfig)
	if p != "" && p[len(p)-1] != '/' {
		p += "/"
	}

	return p
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
