package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift.dev/pkg/sift/internal/controller"
)

// newTestRootCmd builds a fresh root command wired like the package-level one,
// with its output captured and the log file redirected to a temp dir.
func newTestRootCmd(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "sift.log"))
	t.Cleanup(func() { viper.Set(logFilenameKey, defaultLogFilename) })

	cmd := baseRootCmd()
	configureRootFlags(cmd)

	// Rebind the config keys to the package-level command afterwards so a
	// flag parsed here does not leak into the next test's defaults.
	t.Cleanup(func() {
		bindFlagToConfig(rootCmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)
		bindFlagToConfig(rootCmd.PersistentFlags().Lookup(browserFlagName), browsersConfigKey)
		bindFlagToConfig(rootCmd.PersistentFlags().Lookup(grepFlagName), grepConfigKey)
	})

	for _, sub := range subcommands {
		cmd.AddCommand(sub)
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)

	originalUI := ui
	ui = controller.NewSimpleUI(cmd)
	t.Cleanup(func() { ui = originalUI })

	return cmd, out
}

func examplePath(name string) string {
	return filepath.Join("..", "examples", name)
}

func TestBaseRootCmd(t *testing.T) {
	cmd := baseRootCmd()
	assert.Equal(t, "sift", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd, out := newTestRootCmd(t)

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "Definition files are YAML documents")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, hasher)
	assert.NotNil(t, ui)
	assert.NotNil(t, planBrowser)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_WithError(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("command failed")
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute would call os.Exit(1) here, so only the command itself is run.
	err := rootCmd.Execute()
	require.Error(t, err)
}
