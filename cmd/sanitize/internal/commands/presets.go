package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/presets"
)

func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range presets.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
