package table

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeopleController(t *testing.T, seed []person, opts ...Option) *Controller[person] {
	t.Helper()
	ctl, err := NewController(personDefinition(), 10, seed, opts...)
	require.NoError(t, err)
	return ctl
}

func TestGateLastRequestWins(t *testing.T) {
	var gate Gate
	_, pending := gate.Pending()
	assert.False(t, pending)

	gate.RequestDelete("1")
	gate.RequestDelete("2")
	target, pending := gate.Pending()
	assert.True(t, pending)
	assert.Equal(t, "2", target)

	var removed []string
	id, ok := gate.Confirm(func(id string) { removed = append(removed, id) })
	assert.True(t, ok)
	assert.Equal(t, "2", id)
	assert.Equal(t, []string{"2"}, removed)

	_, pending = gate.Pending()
	assert.False(t, pending)
}

func TestGateConfirmWhenIdleIsNoop(t *testing.T) {
	var gate Gate
	called := false
	_, ok := gate.Confirm(func(string) { called = true })
	assert.False(t, ok)
	assert.False(t, called)
}

func TestControllerDeleteScenario(t *testing.T) {
	ctl := newPeopleController(t, []person{{id: "1", name: "UserA"}, {id: "2", name: "UserB"}})

	ctl.RequestDelete("1")
	target, pending := ctl.PendingDelete()
	require.True(t, pending)
	assert.Equal(t, "1", target)

	ctl.CancelDelete()
	_, pending = ctl.PendingDelete()
	assert.False(t, pending)
	assert.Equal(t, []string{"1", "2"}, ids(ctl.All()))

	ctl.RequestDelete("1")
	id, removed := ctl.ConfirmDelete()
	assert.Equal(t, "1", id)
	assert.True(t, removed)
	assert.Equal(t, []string{"2"}, ids(ctl.All()))

	id, removed = ctl.ConfirmDelete()
	assert.Empty(t, id)
	assert.False(t, removed)
}

func TestControllerConfirmDeleteOfMissingRecord(t *testing.T) {
	ctl := newPeopleController(t, people(2))

	ctl.RequestDelete("404")
	id, removed := ctl.ConfirmDelete()
	assert.Equal(t, "404", id)
	assert.False(t, removed)
	assert.Equal(t, 2, len(ctl.All()))
}

func TestControllerSubmitRoundTrip(t *testing.T) {
	ctl := newPeopleController(t, people(3))
	now := time.Date(2024, 2, 3, 4, 5, 0, 0, time.UTC)

	ctl.OpenForm()
	rec, ok, err := ctl.Submit(url.Values{"name": {"Zed"}, "tags": {"red"}}, "admin", now)
	require.NoError(t, err)
	require.True(t, ok)

	for _, existing := range people(3) {
		assert.NotEqual(t, existing.id, rec.id)
	}
	got, found := ctl.Record(rec.id)
	require.True(t, found)
	assert.Equal(t, rec, got)
	assert.Equal(t, "Zed", got.name)
	assert.Equal(t, "admin", got.author)
	assert.Equal(t, now, got.joined)
	assert.False(t, ctl.Form().IsOpen())

	all := ctl.All()
	assert.Equal(t, rec.id, all[len(all)-1].id)
}

func TestControllerSubmitIssuesFreshIDs(t *testing.T) {
	ctl := newPeopleController(t, nil)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ctl.OpenForm()
		rec, ok, err := ctl.Submit(url.Values{"name": {"n"}, "tags": {"blue"}}, "admin", time.Now())
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, seen[rec.id])
		seen[rec.id] = true
	}
	assert.Len(t, ctl.All(), 50)
}

func TestControllerSubmitRejectedKeepsStore(t *testing.T) {
	ctl := newPeopleController(t, people(1))

	ctl.OpenForm()
	_, ok, err := ctl.Submit(url.Values{"name": {" "}}, "admin", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, ctl.Form().IsOpen())
	assert.Len(t, ctl.All(), 1)
}

func TestControllerSubmitRequiresOpenForm(t *testing.T) {
	ctl := newPeopleController(t, nil)
	_, ok, err := ctl.Submit(url.Values{"name": {"Ann"}, "tags": {"red"}}, "admin", time.Now())
	assert.ErrorIs(t, err, ErrFormClosed)
	assert.False(t, ok)
}

func TestControllerSubmitSurfacesDuplicateID(t *testing.T) {
	ctl := newPeopleController(t, people(1), WithIDGenerator(func() string { return "1" }))

	ctl.OpenForm()
	_, ok, err := ctl.Submit(url.Values{"name": {"Ann"}, "tags": {"red"}}, "admin", time.Now())
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.False(t, ok)
	assert.Len(t, ctl.All(), 1)
}

func TestControllerViewUsesPageSize(t *testing.T) {
	ctl := newPeopleController(t, people(25))
	page := ctl.View(Query{Page: 9})
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.Page)
}

func TestControllerLabel(t *testing.T) {
	ctl := newPeopleController(t, nil)
	assert.Equal(t, "Ann", ctl.Label(person{id: "1", name: "Ann"}))

	def := personDefinition()
	def.Label = nil
	bare, err := NewController(def, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", bare.Label(person{id: "1"}))
	assert.Nil(t, bare.Definition().OnEdit)
}
