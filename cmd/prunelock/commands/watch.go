package commands

import "github.com/spf13/cobra"

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [bundle]",
		Short: "Prune again whenever the bundle description or the lockfile changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pruneOptions(cmd, args)
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), opts)
		},
	}

	addPruneFlags(cmd.Flags())

	return cmd
}
