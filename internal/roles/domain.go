package roles

import (
	"net/url"
	"time"

	"github.com/odyssey-erp/rbac-console/internal/seed"
	"github.com/odyssey-erp/rbac-console/internal/table"
)

// Kind is the route segment of the roles view.
const Kind = "roles"

// Role represents a role for management.
type Role struct {
	ID          string
	Name        string
	Description string
	IsDisabled  bool
	CreatedBy   string
	CreatedOn   time.Time
	UpdatedOn   time.Time
}

// RecordID implements table.Record.
func (r Role) RecordID() string { return r.ID }

// Definition configures the roles table.
func Definition() table.Definition[Role] {
	return table.Definition[Role]{
		Kind:     Kind,
		Title:    "Roles",
		Singular: "Role",
		Columns: []table.Column[Role]{
			table.TextColumn("name", "Name", func(r Role) string { return r.Name }),
			table.TextColumn("description", "Description", func(r Role) string { return r.Description }),
			table.BoolColumn("isDisabled", "Is Disabled", func(r Role) bool { return r.IsDisabled }),
			table.TextColumn("createdBy", "Created By", func(r Role) string { return r.CreatedBy }),
			table.TimeColumn("createdOn", "Created On", func(r Role) time.Time { return r.CreatedOn }),
			table.TimeColumn("updatedOn", "Updated On", func(r Role) time.Time { return r.UpdatedOn }),
		},
		Fields: []table.Field{
			{Name: "name", Label: "Role Name", Required: true},
			{Name: "description", Label: "Description"},
			{Name: "isDisabled", Label: "Disabled", Input: table.InputCheckbox},
		},
		Build: func(values url.Values, stamp table.Stamp) Role {
			return Role{
				ID:          stamp.ID,
				Name:        values.Get("name"),
				Description: values.Get("description"),
				IsDisabled:  table.Checked(values, "isDisabled"),
				CreatedBy:   stamp.Actor,
				CreatedOn:   stamp.Now,
				UpdatedOn:   stamp.Now,
			}
		},
		Label: func(r Role) string { return r.Name },
	}
}

// FromSeed converts seed rows.
func FromSeed(rows []seed.Role) []Role {
	out := make([]Role, 0, len(rows))
	for _, row := range rows {
		out = append(out, Role{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			IsDisabled:  row.Disabled,
			CreatedBy:   row.CreatedBy,
			CreatedOn:   row.CreatedOn,
			UpdatedOn:   row.UpdatedOn,
		})
	}
	return out
}
