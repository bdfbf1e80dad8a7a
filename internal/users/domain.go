package users

import (
	"net/url"
	"strings"
	"time"

	"github.com/odyssey-erp/rbac-console/internal/seed"
	"github.com/odyssey-erp/rbac-console/internal/table"
)

// Kind is the route segment of the users view.
const Kind = "users"

// User represents a user account for management.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	Username   string
	Email      string
	Phone      string
	Timezone   string
	CreatedBy  string
	IsDisabled bool
	CreatedOn  time.Time
	UpdatedOn  time.Time
}

// RecordID implements table.Record.
func (u User) RecordID() string { return u.ID }

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Definition configures the users table.
func Definition() table.Definition[User] {
	return table.Definition[User]{
		Kind:     Kind,
		Title:    "Users",
		Singular: "User",
		Columns: []table.Column[User]{
			table.TextColumn("firstName", "First Name", func(u User) string { return u.FirstName }),
			table.TextColumn("lastName", "Last Name", func(u User) string { return u.LastName }),
			table.TextColumn("username", "Username", func(u User) string { return u.Username }),
			table.TextColumn("email", "Email", func(u User) string { return u.Email }),
			table.TextColumn("phone", "Phone", func(u User) string { return u.Phone }),
			table.TextColumn("timezone", "Timezone", func(u User) string { return u.Timezone }),
			table.TextColumn("createdBy", "Created By", func(u User) string { return u.CreatedBy }),
			table.BoolColumn("isDisabled", "Is Disabled", func(u User) bool { return u.IsDisabled }),
			table.TimeColumn("createdOn", "Created On", func(u User) time.Time { return u.CreatedOn }),
			table.TimeColumn("updatedOn", "Updated On", func(u User) time.Time { return u.UpdatedOn }),
		},
		Fields: []table.Field{
			{Name: "firstName", Label: "First Name", Required: true},
			{Name: "lastName", Label: "Last Name", Required: true},
			{Name: "username", Label: "Username", Required: true},
			{Name: "email", Label: "Email", Input: table.InputEmail, Required: true},
			{Name: "phone", Label: "Phone", Required: true},
			{Name: "timezone", Label: "Timezone", Required: true},
			{Name: "isDisabled", Label: "Is Disabled", Input: table.InputCheckbox},
		},
		Build: build,
		Label: func(u User) string {
			if name := u.FullName(); name != "" {
				return name
			}
			return u.Username
		},
	}
}

func build(values url.Values, stamp table.Stamp) User {
	return User{
		ID:         stamp.ID,
		FirstName:  values.Get("firstName"),
		LastName:   values.Get("lastName"),
		Username:   values.Get("username"),
		Email:      values.Get("email"),
		Phone:      values.Get("phone"),
		Timezone:   values.Get("timezone"),
		CreatedBy:  stamp.Actor,
		IsDisabled: table.Checked(values, "isDisabled"),
		CreatedOn:  stamp.Now,
		UpdatedOn:  stamp.Now,
	}
}

// FromSeed converts seed rows.
func FromSeed(rows []seed.User) []User {
	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, User{
			ID:         row.ID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Username:   row.Username,
			Email:      row.Email,
			Phone:      row.Phone,
			Timezone:   row.Timezone,
			CreatedBy:  row.CreatedBy,
			IsDisabled: row.Disabled,
			CreatedOn:  row.CreatedOn,
			UpdatedOn:  row.UpdatedOn,
		})
	}
	return out
}
