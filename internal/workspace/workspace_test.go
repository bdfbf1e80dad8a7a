package workspace

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

func TestEnterReusesActiveView(t *testing.T) {
	ws := &Workspace{}
	opened := 0
	open := func() (*counter, error) { opened++; return &counter{}, nil }

	require.NoError(t, Enter(ws, "users", open, func(c *counter) { c.n++ }))
	require.NoError(t, Enter(ws, "users", open, func(c *counter) { c.n++ }))

	var seen int
	require.NoError(t, Enter(ws, "users", open, func(c *counter) { seen = c.n }))
	assert.Equal(t, 2, seen)
	assert.Equal(t, 1, opened)
	assert.Equal(t, "users", ws.Active())
}

func TestEnterOtherKindDiscardsPreviousView(t *testing.T) {
	ws := &Workspace{}
	open := func() (*counter, error) { return &counter{}, nil }

	require.NoError(t, Enter(ws, "users", open, func(c *counter) { c.n = 5 }))
	require.NoError(t, Enter(ws, "roles", open, func(c *counter) { assert.Equal(t, 0, c.n) }))

	var back int
	require.NoError(t, Enter(ws, "users", open, func(c *counter) { back = c.n }))
	assert.Equal(t, 0, back, "returning to users starts over")
}

func TestLeaveDiscardsView(t *testing.T) {
	ws := &Workspace{}
	open := func() (*counter, error) { return &counter{}, nil }
	require.NoError(t, Enter(ws, "users", open, func(c *counter) { c.n = 3 }))

	ws.Leave()
	assert.Equal(t, "", ws.Active())

	require.NoError(t, Enter(ws, "users", open, func(c *counter) { assert.Equal(t, 0, c.n) }))
}

func TestEnterPropagatesOpenError(t *testing.T) {
	ws := &Workspace{}
	boom := errors.New("boom")
	called := false
	err := Enter(ws, "users", func() (*counter, error) { return nil, boom }, func(*counter) { called = true })
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
	assert.Equal(t, "", ws.Active())
}

func TestEnterSerializesEvents(t *testing.T) {
	ws := &Workspace{}
	open := func() (*counter, error) { return &counter{}, nil }

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Enter(ws, "users", open, func(c *counter) { c.n++ })
		}()
	}
	wg.Wait()

	var total int
	require.NoError(t, Enter(ws, "users", open, func(c *counter) { total = c.n }))
	assert.Equal(t, 50, total)
}

func TestManagerGetCreatesOncePerSession(t *testing.T) {
	m := NewManager(10, time.Hour, nil)

	a := m.Get("a")
	assert.Same(t, a, m.Get("a"))
	assert.NotSame(t, a, m.Get("b"))
	assert.Equal(t, 2, m.Len())

	m.Discard("a")
	_, ok := m.Peek("a")
	assert.False(t, ok)
	assert.NotSame(t, a, m.Get("a"))
}

func TestManagerEvictsLeastRecentlyUsed(t *testing.T) {
	m := NewManager(2, time.Hour, nil)
	m.Get("a")
	m.Get("b")
	m.Get("a")
	m.Get("c")

	_, ok := m.Peek("b")
	assert.False(t, ok)
	_, ok = m.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, 2, m.Len())
}
