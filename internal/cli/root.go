package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/synth/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "synth",
		Short:         "Synth - build HTTP requests from OpenAPI examples",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)
	root.AddCommand(BuildCommand(), OperationsCommand())

	return root
}
