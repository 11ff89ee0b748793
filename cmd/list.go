package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "sift.dev/pkg/sift/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [files...]",
		Short: "List the tests a set of definition files compiles to",
		Long:  listLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			browsers := viper.GetStringSlice(browsersConfigKey)
			grep := viper.GetString(grepConfigKey)

			policy, err := loadSkipPolicy()
			if err != nil {
				return err
			}

			var all []m.PlanEntry

			for _, browserID := range browsers {
				entries, err := compilePlan(browserID, args, grep, policy)
				if err != nil {
					return err
				}

				if err := ui.DisplayPlan(cmd.Context(), browserID, entries); err != nil {
					return err
				}

				all = append(all, entries...)
			}

			return ui.DisplayFiles(cmd.Context(), all)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
