package table

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

type person struct {
	id     string
	name   string
	admin  bool
	joined time.Time
	tags   []string
	author string
}

func (p person) RecordID() string { return p.id }

func (p person) Clone() person {
	p.tags = slices.Clone(p.tags)
	return p
}

var personColumns = []Column[person]{
	TextColumn("name", "Name", func(p person) string { return p.name }),
	BoolColumn("admin", "Admin", func(p person) bool { return p.admin }),
	TimeColumn("joined", "Joined", func(p person) time.Time { return p.joined }),
	ListColumn("tags", "Tags", func(p person) []string { return p.tags }),
}

var personFields = []Field{
	{Name: "name", Label: "Name", Required: true},
	{Name: "admin", Label: "Admin", Input: InputCheckbox},
	{Name: "tags", Label: "Tags", Input: InputMultiSelect, Required: true, Options: []string{"red", "blue"}},
}

func buildPerson(values url.Values, stamp Stamp) person {
	return person{
		id:     stamp.ID,
		name:   values.Get("name"),
		admin:  Checked(values, "admin"),
		joined: stamp.Now,
		tags:   values["tags"],
		author: stamp.Actor,
	}
}

func personDefinition() Definition[person] {
	return Definition[person]{
		Kind:     "people",
		Title:    "People",
		Singular: "Person",
		Columns:  personColumns,
		Fields:   personFields,
		Build:    buildPerson,
		Label:    func(p person) string { return p.name },
	}
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func people(n int) []person {
	out := make([]person, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, person{
			id:     fmt.Sprintf("%d", i+1),
			name:   fmt.Sprintf("Person %02d", i+1),
			admin:  i%3 == 0,
			joined: epoch.Add(time.Duration(n-i) * time.Hour),
			tags:   []string{[]string{"red", "blue", "green"}[i%3]},
		})
	}
	return out
}

func ids(rows []person) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}

func containsFolded(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
