package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sift.dev/pkg/sift/internal/controller"
	m "sift.dev/pkg/sift/internal/model"
	"sift.dev/pkg/sift/pkg"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [browser]",
		Short: "View a previously compiled test plan",
		Long:  "View a previously compiled test plan from the plans directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := viper.GetString(outputFlagName)

			browserID := ""
			if len(args) == 1 {
				browserID = args[0]
			} else if browsers := viper.GetStringSlice(browsersConfigKey); len(browsers) > 0 {
				browserID = browsers[0]
			}

			if browserID == "" {
				return fmt.Errorf("no browser configured, pass one as an argument")
			}

			entries, err := readPlan(outputDir, browserID)
			if err != nil {
				return err
			}

			if controller.IsTTY(os.Stdout) {
				return planBrowser.Browse(browserID, entries)
			}

			return ui.DisplayPlan(cmd.Context(), browserID, entries)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func readPlan(outputDir, browserID string) ([]m.PlanEntry, error) {
	log, err := pkg.OpenPlanLog[m.PlanEntry](planPath(outputDir, browserID))
	if err != nil {
		return nil, err
	}

	entries := make([]m.PlanEntry, 0, log.Len())

	err = log.Range(func(_ uint64, entry m.PlanEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
