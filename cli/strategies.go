package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/anchorpos/position"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the positioning strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range position.Strategies() {
				fmt.Fprintln(cmd.OutOrStdout(), s.Name())
			}
			return nil
		},
	}
}
