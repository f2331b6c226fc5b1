package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pulp/docstub/internal/domain"
	m "github.com/pulp/docstub/internal/model"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [root]",
		Short: "Generate documentation stubs",
		Long:  generateLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Generate(context.Background(), domain.GenerateArgs{
				DiscoverArgs: discoverArgs(args),
				Output:       m.Path(viper.GetString(outputFlagName)),
				DocExt:       viper.GetString(docExtConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
