package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/prunelock/internal/adapters/config"
	"go.trai.ch/prunelock/internal/app"
	"go.trai.ch/prunelock/internal/core/domain"
)

func (c *CLI) newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune [bundle]",
		Short: "Prune the lockfile to the packages referenced by a finished bundle",
		Long: "Reads a bundle description (an esbuild metafile or a chunk manifest) and writes\n" +
			"package.json and package-lock.json containing only the packages the bundle uses.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pruneOptions(cmd, args)
			if err != nil {
				return err
			}
			return c.app.Prune(cmd.Context(), opts)
		},
	}

	addPruneFlags(cmd.Flags())

	return cmd
}

func addPruneFlags(flags *pflag.FlagSet) {
	flags.StringP("bundle", "b", "", "Bundle description to read (esbuild metafile or chunk manifest)")
	flags.String("format", "", "Bundle format: auto, esbuild or chunks")
	addTargetFlags(flags)
}

// addTargetFlags registers the flags that say where the lockfile is read from and written to.
func addTargetFlags(flags *pflag.FlagSet) {
	flags.String("root", "", "Project root holding the full lockfile")
	flags.String("lockfile", "", "Lockfile name relative to the project root")
	flags.StringP("output-dir", "o", "", "Directory receiving the pruned package.json and package-lock.json")
	flags.Bool("verify", false, "Check the pruned lockfile with the package manager after writing")
	flags.StringSlice("verify-command", nil, "Package manager command used by --verify")
}

func pruneOptions(cmd *cobra.Command, args []string) (app.PruneOptions, error) {
	opts, err := targetOptions(cmd)
	if err != nil {
		return app.PruneOptions{}, err
	}

	flags := cmd.Flags()
	opts.Overrides.BundlePath, _ = flags.GetString("bundle")
	if len(args) == 1 {
		opts.Overrides.BundlePath = args[0]
	}

	if format, _ := flags.GetString("format"); format != "" {
		parsed, err := config.ParseBundleFormat(format)
		if err != nil {
			return app.PruneOptions{}, err
		}
		opts.Overrides.BundleFormat = parsed
	}

	return opts, nil
}

func targetOptions(cmd *cobra.Command) (app.PruneOptions, error) {
	flags := cmd.Flags()

	dir, _ := flags.GetString("dir")
	outputMode, _ := flags.GetString("output-mode")

	var overrides domain.Config
	overrides.Root, _ = flags.GetString("root")
	overrides.Lockfile, _ = flags.GetString("lockfile")
	overrides.OutputDir, _ = flags.GetString("output-dir")
	overrides.Verify, _ = flags.GetBool("verify")

	if flags.Changed("verify-command") {
		command, _ := flags.GetStringSlice("verify-command")
		if len(command) == 0 {
			return app.PruneOptions{}, domain.ErrEmptyVerifyCommand
		}
		overrides.VerifyCommand = command
	}

	return app.PruneOptions{
		Dir:        dir,
		Overrides:  overrides,
		OutputMode: outputMode,
	}, nil
}
