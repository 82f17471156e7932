package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"project-updater/internal/adapters"
	"project-updater/internal/app"
)

func newAppService() app.Service {
	return app.NewService(app.ServiceConfig{
		ManifestName:        viper.GetString("manifest"),
		DefaultRepositories: viper.GetStringSlice("default_repositories"),
		HTTP: adapters.HTTPConfig{
			TimeoutSec:   viper.GetInt("http.timeout_sec"),
			Retries:      viper.GetInt("http.retries"),
			RetryDelayMs: viper.GetInt("http.retry_delay_ms"),
			User:         viper.GetString("http.user"),
			Token:        viper.GetString("http.token"),
		},
	})
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
