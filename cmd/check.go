package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pulp/docstub/internal/domain"
	m "github.com/pulp/docstub/internal/model"
)

var checkWorkersFlag int

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Verify stubs are up to date",
		Long:  checkLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Check(context.Background(), domain.CheckArgs{
				GenerateArgs: domain.GenerateArgs{
					DiscoverArgs: discoverArgs(args),
					Output:       m.Path(viper.GetString(outputFlagName)),
					DocExt:       viper.GetString(docExtConfigKey),
				},
				Workers: viper.GetInt(checkWorkersConfigKey),
			})
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkWorkersFlag, checkWorkersFlName, "w", viper.GetInt(checkWorkersConfigKey), "number of parallel workers for stub comparison")
	bindFlagToConfig(cmd.Flags().Lookup(checkWorkersFlName), checkWorkersConfigKey)
}
