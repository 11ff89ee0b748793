package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_DisplaysPlan(t *testing.T) {
	cmd, out := newTestRootCmd(t, newListCmd())

	cmd.SetArgs([]string{"list", examplePath("auth.yaml")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "auth signs in with valid credentials")
	assert.Contains(t, out.String(), "auth rejects a wrong password")
	assert.Contains(t, out.String(), "auth password reset sends a reset email")
	assert.Contains(t, strings.ToUpper(out.String()), "3 TESTS")
	assert.Contains(t, out.String(), "auth.yaml")
	assert.Contains(t, strings.ToUpper(out.String()), "TOTAL FILES 1")
}

func TestListCmd_ShowsSkipReasons(t *testing.T) {
	cmd, out := newTestRootCmd(t, newListCmd())

	cmd.SetArgs([]string{"list", examplePath("checkout.yaml")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "discount service is down")
}

func TestListCmd_BrokenFileFails(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newListCmd())

	cmd.SetArgs([]string{"list", examplePath(`broken/invalid.yaml`)})
	require.Error(t, cmd.Execute())
}

func TestListCmd_RequiresFiles(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newListCmd())

	cmd.SetArgs([]string{"list"})
	require.Error(t, cmd.Execute())
}
