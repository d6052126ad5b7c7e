package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prunelock/internal/app"
	"go.trai.ch/prunelock/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <entry points...>",
		Short: "Bundle with esbuild and prune the lockfile after every build",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := targetOptions(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			spec := domain.BuildSpec{EntryPoints: args}
			spec.OutDir, _ = flags.GetString("outdir")
			spec.External, _ = flags.GetStringSlice("external")
			spec.Minify, _ = flags.GetBool("minify")
			spec.Sourcemap, _ = flags.GetBool("sourcemap")
			spec.Watch, _ = flags.GetBool("watch")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				PruneOptions: opts,
				Spec:         spec,
			})
		},
	}

	cmd.Flags().String("outdir", "dist", "Directory receiving the bundle")
	cmd.Flags().StringSlice("external", nil, "Packages left out of the bundle")
	cmd.Flags().Bool("minify", false, "Minify the bundle")
	cmd.Flags().Bool("sourcemap", false, "Emit linked source maps")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild and prune on every source change")
	addTargetFlags(cmd.Flags())

	return cmd
}
