package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/odyssey-erp/rbac-console/internal/permissions"
	"github.com/odyssey-erp/rbac-console/internal/roles"
	"github.com/odyssey-erp/rbac-console/internal/seed"
	"github.com/odyssey-erp/rbac-console/internal/table"
	"github.com/odyssey-erp/rbac-console/internal/users"
)

// SeedValidateOptions defines available flags for the seed validate command.
type SeedValidateOptions struct {
	Path       string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// SeedValidateSummary describes the JSON response for seed validate.
type SeedValidateSummary struct {
	OK     bool           `json:"ok"`
	Counts map[string]int `json:"counts"`
	Issues []SeedIssue    `json:"issues"`
}

// SeedIssue is one problem found in a seed document.
type SeedIssue struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Problem string `json:"problem"`
}

// ValidateSeedCommand checks a seed document and prints the outcome. It
// returns 0 when the document is usable, 10 when issues were found and 1 when
// the document could not be read.
func ValidateSeedCommand(opts SeedValidateOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	data, err := seed.Load(opts.Path)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "seed validate: %v\n", err)
		return 1
	}
	summary := ValidateSeed(data)
	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(summary); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "seed validate: encode json: %v\n", err)
			return 1
		}
	} else {
		renderSeedHuman(opts.Stdout, opts.Path, summary)
	}
	if !summary.OK {
		return 10
	}
	return 0
}

// ValidateSeed reports ids a view could not load and rows missing values the
// add form would require.
func ValidateSeed(data seed.Data) SeedValidateSummary {
	var issues []SeedIssue

	userRows := users.FromSeed(data.Users)
	issues = append(issues, checkIDs(users.Kind, userRows)...)
	for _, u := range userRows {
		if strings.TrimSpace(u.Username) == "" {
			issues = append(issues, SeedIssue{Kind: users.Kind, ID: u.ID, Problem: "username is blank"})
		}
	}

	roleRows := roles.FromSeed(data.Roles)
	issues = append(issues, checkIDs(roles.Kind, roleRows)...)
	for _, r := range roleRows {
		if strings.TrimSpace(r.Name) == "" {
			issues = append(issues, SeedIssue{Kind: roles.Kind, ID: r.ID, Problem: "name is blank"})
		}
	}

	permRows := permissions.FromSeed(data.Permissions)
	issues = append(issues, checkIDs(permissions.Kind, permRows)...)
	for _, p := range permRows {
		if strings.TrimSpace(p.Name) == "" {
			issues = append(issues, SeedIssue{Kind: permissions.Kind, ID: p.ID, Problem: "name is blank"})
		}
		issues = append(issues, checkCatalog(p.ID, "resource", p.Resources, permissions.Resources())...)
		issues = append(issues, checkCatalog(p.ID, "action", p.Actions, permissions.Actions())...)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Kind == issues[j].Kind {
			return issues[i].ID < issues[j].ID
		}
		return issues[i].Kind < issues[j].Kind
	})
	if issues == nil {
		issues = []SeedIssue{}
	}
	return SeedValidateSummary{
		OK: len(issues) == 0,
		Counts: map[string]int{
			users.Kind:       len(userRows),
			roles.Kind:       len(roleRows),
			permissions.Kind: len(permRows),
		},
		Issues: issues,
	}
}

func checkIDs[T table.Record](kind string, rows []T) []SeedIssue {
	store, _ := table.NewStore[T]()
	var issues []SeedIssue
	for _, row := range rows {
		err := store.Append(row)
		switch {
		case errors.Is(err, table.ErrMissingID):
			issues = append(issues, SeedIssue{Kind: kind, Problem: "id is missing"})
		case errors.Is(err, table.ErrDuplicateID):
			issues = append(issues, SeedIssue{Kind: kind, ID: row.RecordID(), Problem: "id is duplicated"})
		}
	}
	return issues
}

func checkCatalog(id, what string, values, allowed []string) []SeedIssue {
	var issues []SeedIssue
	if len(values) == 0 {
		issues = append(issues, SeedIssue{Kind: permissions.Kind, ID: id, Problem: fmt.Sprintf("no %s selected", what)})
	}
	for _, v := range values {
		if !slices.Contains(allowed, v) {
			issues = append(issues, SeedIssue{Kind: permissions.Kind, ID: id, Problem: fmt.Sprintf("unknown %s %q", what, v)})
		}
	}
	return issues
}

func renderSeedHuman(out io.Writer, path string, summary SeedValidateSummary) {
	if path == "" {
		path = "embedded default"
	}
	_, _ = fmt.Fprintf(out, "Seed validation for %s: %d users, %d roles, %d permissions\n",
		path, summary.Counts[users.Kind], summary.Counts[roles.Kind], summary.Counts[permissions.Kind])
	if summary.OK {
		_, _ = fmt.Fprintln(out, "No issues found.")
		return
	}
	_, _ = fmt.Fprintf(out, "%d issue(s) detected:\n", len(summary.Issues))
	for _, issue := range summary.Issues {
		id := issue.ID
		if id == "" {
			id = "?"
		}
		_, _ = fmt.Fprintf(out, " - %s/%s: %s\n", issue.Kind, id, issue.Problem)
	}
}
