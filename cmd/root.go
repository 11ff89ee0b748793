// Package cmd provides the root command and CLI setup for sift.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"sift.dev/pkg/sift/internal/adapter"
	"sift.dev/pkg/sift/internal/controller"
	"sift.dev/pkg/sift/internal/domain"
)

var hasher domain.Hasher
var ui controller.UI
var planBrowser *controller.TUI

// plansOutputDirFlag is a root-level flag shared by commands that read/write plans.
var plansOutputDirFlag string

// browsersFlag selects the browsers to compile for, overriding the config list.
var browsersFlag []string

// grepFlag narrows the compiled plan to tests whose full title matches.
var grepFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	hasher = adapter.NewShortHasher()
	ui = controller.NewSimpleUI(rootCmd)
	planBrowser = controller.NewTUI(os.Stdout)
}

const definitionFilesHelp = `Definition files are YAML documents describing suites, tests, per-test
hooks and skip/only selection directives:

  suites:
    - title: auth
      beforeEach: [clear cookies]
      tests:
        - title: signs in
          run: [open /login, submit]`

const rootLongDescription = `Sift compiles user-authored test-definition files into per-browser test
plans: it builds a suite tree, assigns stable identities, validates
structure and applies skip/only/grep selection before anything runs.

` + definitionFilesHelp

const compileLongDescription = `Compile the given definition files into one plan per configured browser
and persist the plans to the output directory.

` + definitionFilesHelp

const listLongDescription = `Compile the given definition files and list the resulting tests without
persisting anything.

` + definitionFilesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sift",
		Short: "Test-definition compiler and selection engine",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&plansOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for compiled test plans",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&browsersFlag, browserFlagName, "b", viper.GetStringSlice(browsersConfigKey), "browser to compile for (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(browserFlagName), browsersConfigKey)

	cmd.PersistentFlags().StringVarP(&grepFlag, grepFlagName, "g", viper.GetString(grepConfigKey), "only keep tests whose full title matches the pattern")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(grepFlagName), grepConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
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
