package permissions

import (
	"net/url"
	"slices"

	"github.com/odyssey-erp/rbac-console/internal/seed"
	"github.com/odyssey-erp/rbac-console/internal/table"
)

// Kind is the route segment of the permissions view.
const Kind = "permissions"

// Permission grants actions on resources.
type Permission struct {
	ID        string
	Name      string
	Resources []string
	Actions   []string
}

// RecordID implements table.Record.
func (p Permission) RecordID() string { return p.ID }

// Clone copies the resource and action lists.
func (p Permission) Clone() Permission {
	p.Resources = slices.Clone(p.Resources)
	p.Actions = slices.Clone(p.Actions)
	return p
}

// Definition configures the permissions table.
func Definition() table.Definition[Permission] {
	return table.Definition[Permission]{
		Kind:     Kind,
		Title:    "Permissions",
		Singular: "Permission",
		Columns: []table.Column[Permission]{
			table.TextColumn("name", "Name", func(p Permission) string { return p.Name }),
			table.ListColumn("resources", "Resources", func(p Permission) []string { return p.Resources }),
			table.ListColumn("actions", "Actions", func(p Permission) []string { return p.Actions }),
		},
		Fields: []table.Field{
			{Name: "name", Label: "Permission Name", Required: true},
			{Name: "resources", Label: "Resources", Input: table.InputMultiSelect, Required: true, Options: Resources()},
			{Name: "actions", Label: "Actions", Input: table.InputMultiSelect, Required: true, Options: Actions()},
		},
		Build: func(values url.Values, stamp table.Stamp) Permission {
			return Permission{
				ID:        stamp.ID,
				Name:      values.Get("name"),
				Resources: slices.Clone(values["resources"]),
				Actions:   slices.Clone(values["actions"]),
			}
		},
		Label: func(p Permission) string { return p.Name },
	}
}

// FromSeed converts seed rows.
func FromSeed(rows []seed.Permission) []Permission {
	out := make([]Permission, 0, len(rows))
	for _, row := range rows {
		out = append(out, Permission{
			ID:        row.ID,
			Name:      row.Name,
			Resources: slices.Clone(row.Resources),
			Actions:   slices.Clone(row.Actions),
		})
	}
	return out
}
