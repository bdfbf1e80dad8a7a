package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/rbac-console/internal/seed"
)

func writeSeed(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestValidateSeedCommandDefaultJSON(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := ValidateSeedCommand(SeedValidateOptions{JSONOutput: true, Stdout: stdout, Stderr: stderr})
	require.Zero(t, exitCode)
	require.Empty(t, stderr.String())

	var summary SeedValidateSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.True(t, summary.OK)
	require.Empty(t, summary.Issues)
	require.Equal(t, 3, summary.Counts["users"])
	require.Equal(t, 2, summary.Counts["roles"])
	require.Equal(t, 2, summary.Counts["permissions"])
}

func TestValidateSeedCommandReportsIssues(t *testing.T) {
	path := writeSeed(t, `
[[roles]]
id = "1"
name = "Admin"

[[roles]]
id = "1"
name = "Shadow"

[[permissions]]
id = "p1"
name = "Odd"
resources = ["Users", "Invoices"]
actions = []
`)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := ValidateSeedCommand(SeedValidateOptions{Path: path, JSONOutput: true, Stdout: stdout, Stderr: stderr})
	require.Equal(t, 10, exitCode)
	require.Empty(t, stderr.String())

	var summary SeedValidateSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	require.False(t, summary.OK)
	require.ElementsMatch(t, []SeedIssue{
		{Kind: "roles", ID: "1", Problem: "id is duplicated"},
		{Kind: "permissions", ID: "p1", Problem: `unknown resource "Invoices"`},
		{Kind: "permissions", ID: "p1", Problem: "no action selected"},
	}, summary.Issues)
}

func TestValidateSeedCommandHumanOutput(t *testing.T) {
	path := writeSeed(t, `
[[users]]
id = "u1"
username = " "
`)
	stdout := new(bytes.Buffer)
	exitCode := ValidateSeedCommand(SeedValidateOptions{Path: path, Stdout: stdout, Stderr: new(bytes.Buffer)})
	require.Equal(t, 10, exitCode)
	require.Contains(t, stdout.String(), "1 users, 0 roles, 0 permissions")
	require.Contains(t, stdout.String(), "users/u1: username is blank")
}

func TestValidateSeedCommandUnreadableFile(t *testing.T) {
	path := writeSeed(t, "[[users]]\nid = \"1\"\nnickname = \"x\"\n")
	stderr := new(bytes.Buffer)
	exitCode := ValidateSeedCommand(SeedValidateOptions{Path: path, Stdout: new(bytes.Buffer), Stderr: stderr})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "unknown keys")
}

func TestValidateSeedMissingID(t *testing.T) {
	summary := ValidateSeed(seed.Data{Roles: []seed.Role{{Name: "Nameless"}}})
	require.False(t, summary.OK)
	require.Equal(t, []SeedIssue{{Kind: "roles", Problem: "id is missing"}}, summary.Issues)
}
