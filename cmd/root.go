// Package cmd provides the root command and CLI setup for docstub.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pulp/docstub/internal/adapter"
	"github.com/pulp/docstub/internal/controller"
	"github.com/pulp/docstub/internal/domain"
	m "github.com/pulp/docstub/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var stubStore adapter.StubStore
var scanner domain.Scanner
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that read/write stubs.
var outputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// sourceExtFlag overrides the source-file extension of the scanned modules.
var sourceExtFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	stubStore = adapter.NewLocalStubStore()
	scanner = domain.NewScanner(fsAdapter)
	workflow = domain.NewWorkflow(scanner, stubStore, ui)
}

const rootUsageHelp = `The scan root defaults to the configured test-suite directory; pass a
different directory as the positional argument. Run from the repository
root so module names match the test runner's discovery convention.`

const rootLongDescription = `Docstub generates reference-documentation stubs for a functional test
suite. It scans the test-module tree, derives a dotted module name per
source file, and writes one reStructuredText stub per module for the
documentation build to render.

` + rootUsageHelp

const generateLongDescription = `Generate one documentation stub per discovered test module into the
output directory, overwriting existing stubs unconditionally.

` + rootUsageHelp

const listLongDescription = `List discovered test modules and their source files without writing
anything.

` + rootUsageHelp

const checkLongDescription = `Verify that the output directory matches a fresh generation run. Prints
a unified diff per drifted stub and exits non-zero when stubs are
missing, modified, or stale.

` + rootUsageHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docstub",
		Short: "Documentation stub generator for test suites",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for generated documentation stubs",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&sourceExtFlag, sourceExtFlagName, viper.GetString(sourceExtConfigKey), "extension of the scanned source modules")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(sourceExtFlagName), sourceExtConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseRoot resolves the scan root from the positional argument, falling
// back to the configured default.
func parseRoot(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return m.Path(viper.GetString(rootConfigKey))
}

// discoverArgs assembles the shared discovery arguments from flags/config.
func discoverArgs(args []string) domain.DiscoverArgs {
	return domain.DiscoverArgs{
		Root:      parseRoot(args),
		SourceExt: viper.GetString(sourceExtConfigKey),
		Exclude:   viper.GetStringSlice(excludeConfigKey),
	}
}
