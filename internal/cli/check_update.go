package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"project-updater/internal/app"
)

type updateOptions struct {
	Package string
}

func newCheckUpdateCommand() *cobra.Command {
	opts := updateOptions{}
	cmd := &cobra.Command{
		Use:   "check-update [version]",
		Short: "Check whether a newer version of the project package is available",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckUpdate(cmd.Context(), cmd, opts, optionalArg(args))
		},
	}

	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name (overrides the project manifest)")
	_ = viper.BindPFlag("package", cmd.Flags().Lookup("package"))

	return cmd
}

func runCheckUpdate(ctx context.Context, cmd *cobra.Command, opts updateOptions, versionArg string) error {
	service := newAppService()
	result, err := service.CheckUpdate(ctx, app.UpdateRequest{
		WorkDir: viper.GetString("working_dir"),
		Package: resolveString(cmd, opts.Package, "package", "package"),
		Version: versionArg,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message())
	return nil
}
