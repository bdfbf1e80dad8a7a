package users

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/rbac-console/internal/seed"
	"github.com/odyssey-erp/rbac-console/internal/table"
)

func TestSubmitStampsActorAndTimes(t *testing.T) {
	ctl, err := table.NewController(Definition(), 10, nil)
	require.NoError(t, err)
	now := time.Date(2024, 3, 4, 5, 6, 0, 0, time.UTC)

	ctl.OpenForm()
	user, ok, err := ctl.Submit(url.Values{
		"firstName":  {"Jane"},
		"lastName":   {"Roe"},
		"username":   {"janeroe"},
		"email":      {"jane@example.com"},
		"phone":      {"555-0100"},
		"timezone":   {"UTC"},
		"isDisabled": {"on"},
		"createdBy":  {"spoofed"},
	}, "operator", now)
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "operator", user.CreatedBy)
	assert.True(t, user.IsDisabled)
	assert.Equal(t, now, user.CreatedOn)
	assert.Equal(t, now, user.UpdatedOn)
	assert.Equal(t, "Jane Roe", ctl.Label(user))
}

func TestRequiredFields(t *testing.T) {
	ctl, err := table.NewController(Definition(), 10, nil)
	require.NoError(t, err)

	ctl.OpenForm()
	_, ok, err := ctl.Submit(url.Values{"firstName": {"Jane"}}, "operator", time.Now())
	require.NoError(t, err)
	require.False(t, ok)

	errs := ctl.Form().Errors()
	for _, name := range []string{"lastName", "username", "email", "phone", "timezone"} {
		assert.Contains(t, errs, name)
	}
	assert.NotContains(t, errs, "firstName")
	assert.NotContains(t, errs, "isDisabled")
}

func TestFromSeed(t *testing.T) {
	data, err := seed.Default()
	require.NoError(t, err)

	users := FromSeed(data.Users)
	require.Len(t, users, 3)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, "John Doe", users[0].FullName())

	ctl, err := table.NewController(Definition(), 10, users)
	require.NoError(t, err)
	page := ctl.View(table.Query{Search: "ALICE"})
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "alicejohnson", page.Rows[0].Username)

	sorted := ctl.View(table.Query{SortBy: "createdOn", Desc: true})
	assert.Equal(t, "3", sorted.Rows[0].ID)
}
