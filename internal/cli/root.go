package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"project-updater/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PROJECT_UPDATER"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	WorkingDir string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "project-updater",
		Short:   "Keep a project in sync with a released package version",
		Version: version,
		// Execute reports errors itself so the message matches the exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.WorkingDir, "working-dir", ".", "Project directory holding the manifest and lock file")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("working_dir", cmd.PersistentFlags().Lookup("working-dir"))

	cmd.AddCommand(newCheckUpdateCommand())
	cmd.AddCommand(newSelfUpdateCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("project-updater")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/project-updater")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read config file").
			WithCause(err)
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.DefaultContextLogger = &log.Logger
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// updateErrorExitCodes decides the exit status of updater failures.
var updateErrorExitCodes = map[types.ErrorKind]int{
	types.ErrorKindConfiguration:    2,
	types.ErrorKindPackageNotFound:  4,
	types.ErrorKindFetch:            5,
	types.ErrorKindArchiveCorrupted: 5,
	types.ErrorKindExtraction:       5,
}

func exitCodeForError(err error) int {
	if updateErr, ok := types.AsUpdateError(err); ok {
		if code, known := updateErrorExitCodes[updateErr.Kind]; known {
			return code
		}
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists, errbuilder.CodeFailedPrecondition:
		return 2
	case errbuilder.CodeNotFound, errbuilder.CodePermissionDenied, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	if updateErr, ok := types.AsUpdateError(err); ok {
		return updateErr.Error()
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
