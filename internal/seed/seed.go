// Package seed provides the records every view starts with.
package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultDocument string

// User is a seeded user row.
type User struct {
	ID        string    `toml:"id"`
	FirstName string    `toml:"first_name"`
	LastName  string    `toml:"last_name"`
	Username  string    `toml:"username"`
	Email     string    `toml:"email"`
	Phone     string    `toml:"phone"`
	Timezone  string    `toml:"timezone"`
	CreatedBy string    `toml:"created_by"`
	Disabled  bool      `toml:"disabled"`
	CreatedOn time.Time `toml:"created_on"`
	UpdatedOn time.Time `toml:"updated_on"`
}

// Role is a seeded role row.
type Role struct {
	ID          string    `toml:"id"`
	Name        string    `toml:"name"`
	Description string    `toml:"description"`
	CreatedBy   string    `toml:"created_by"`
	Disabled    bool      `toml:"disabled"`
	CreatedOn   time.Time `toml:"created_on"`
	UpdatedOn   time.Time `toml:"updated_on"`
}

// Permission is a seeded permission row.
type Permission struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Resources []string `toml:"resources"`
	Actions   []string `toml:"actions"`
}

// Data groups seed rows per entity kind.
type Data struct {
	Users       []User       `toml:"users"`
	Roles       []Role       `toml:"roles"`
	Permissions []Permission `toml:"permissions"`
}

// Default decodes the embedded seed document.
func Default() (Data, error) {
	return decode(defaultDocument, "default seed")
}

// Load decodes the TOML file at path, or the embedded document when path is
// empty.
func Load(path string) (Data, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	var data Data
	md, err := toml.DecodeFile(path, &data)
	if err != nil {
		return Data{}, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	if err := checkUndecoded(md, path); err != nil {
		return Data{}, err
	}
	return data, nil
}

func decode(doc, name string) (Data, error) {
	var data Data
	md, err := toml.Decode(doc, &data)
	if err != nil {
		return Data{}, fmt.Errorf("seed: decode %s: %w", name, err)
	}
	if err := checkUndecoded(md, name); err != nil {
		return Data{}, err
	}
	return data, nil
}

func checkUndecoded(md toml.MetaData, name string) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, key := range undecoded {
		keys[i] = key.String()
	}
	return fmt.Errorf("seed: %s has unknown keys: %s", name, strings.Join(keys, ", "))
}
