package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"sift.dev/pkg/sift/internal/adapter"
	"sift.dev/pkg/sift/internal/domain"
	m "sift.dev/pkg/sift/internal/model"
	"sift.dev/pkg/sift/pkg"
)

// compileCmd represents the compile command.
var compileCmd = newCompileCmd()

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile definition files into per-browser test plans",
		Long:  compileLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			browsers := viper.GetStringSlice(browsersConfigKey)
			outputDir := viper.GetString(outputFlagName)
			grep := viper.GetString(grepConfigKey)

			policy, err := loadSkipPolicy()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating plans directory: %w", err)
			}

			plans := make([][]m.PlanEntry, len(browsers))

			// One compiler instance per browser; each instance stays
			// single-threaded internally.
			var group errgroup.Group
			for i, browserID := range browsers {
				group.Go(func() error {
					entries, err := compilePlan(browserID, args, grep, policy)
					if err != nil {
						return err
					}

					if err := writePlan(outputDir, browserID, entries); err != nil {
						return err
					}

					plans[i] = entries

					return nil
				})
			}

			if err := group.Wait(); err != nil {
				ui.DisplayError(cmd.Context(), err)
				return err
			}

			for i, browserID := range browsers {
				ui.DisplaySummary(cmd.Context(), browserID, plans[i])
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

// compilePlan builds one browser's tree from the definition files and
// resolves its selection.
func compilePlan(browserID string, files []string, grep string, policy domain.SkipPolicy) ([]m.PlanEntry, error) {
	compiler, err := domain.New(browserID, domain.Config{
		Engine: adapter.NewSpecEngine(),
		Hasher: hasher,
	})
	if err != nil {
		return nil, err
	}

	if err := compiler.Load(files...); err != nil {
		return nil, err
	}

	tests, err := compiler.ApplySkip(policy).ApplyGrep(grep).Compile()
	if err != nil {
		return nil, err
	}

	entries := make([]m.PlanEntry, 0, len(tests))
	for _, t := range tests {
		entries = append(entries, m.PlanEntryFromTest(t))
	}

	return entries, nil
}

func writePlan(outputDir, browserID string, entries []m.PlanEntry) error {
	log, err := pkg.NewPlanLog[m.PlanEntry](planPath(outputDir, browserID))
	if err != nil {
		return err
	}

	if err := log.AppendBatch(entries); err != nil {
		return err
	}

	return log.Close()
}

func planPath(outputDir, browserID string) string {
	return filepath.Join(outputDir, browserID+".plan")
}

// loadSkipPolicy builds the per-browser skip-policy collaborator from the
// skip.rules config section. No rules means no policy.
func loadSkipPolicy() (domain.SkipPolicy, error) {
	var rules []adapter.SkipRule
	if err := viper.UnmarshalKey(skipRulesConfigKey, &rules); err != nil {
		return nil, fmt.Errorf("reading skip rules: %w", err)
	}

	if len(rules) == 0 {
		return nil, nil
	}

	return adapter.NewSkipList(rules)
}
