package table

// Gate guards deletion behind an explicit confirmation. At most one target is
// pending; a new request replaces the previous one.
type Gate struct {
	target  string
	pending bool
}

// RequestDelete makes id the pending target.
func (g *Gate) RequestDelete(id string) {
	g.target = id
	g.pending = true
}

// Pending returns the target awaiting confirmation.
func (g *Gate) Pending() (string, bool) {
	return g.target, g.pending
}

// Confirm runs remove for the pending target and returns to idle. It returns
// the confirmed id, or false when nothing was pending.
func (g *Gate) Confirm(remove func(id string)) (string, bool) {
	if !g.pending {
		return "", false
	}
	id := g.target
	g.Cancel()
	remove(id)
	return id, true
}

// Cancel drops the pending target.
func (g *Gate) Cancel() {
	g.target = ""
	g.pending = false
}
