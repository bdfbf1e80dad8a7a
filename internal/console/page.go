package console

import (
	"github.com/odyssey-erp/rbac-console/internal/shared"
	"github.com/odyssey-erp/rbac-console/internal/table"
)

// pageData is the render model of pages/table.html.
type pageData struct {
	Title     string
	Singular  string
	Base      string
	CSRFToken string

	Search string
	SortBy string
	Desc   bool

	Headers    []header
	Rows       []row
	Colspan    int
	Pagination shared.Pagination
	PrevHref   string
	NextHref   string

	Form    *formData
	Confirm *confirmData
}

type header struct {
	Key    string
	Label  string
	Href   string
	Active bool
	Desc   bool
}

type row struct {
	ID    string
	Cells []string
}

type formData struct {
	Inputs []table.InputState
	Failed int
}

type confirmData struct {
	ID    string
	Label string
}

// present projects the board for q and remembers the effective query.
func (h *Handler[T]) present(b *board[T], q table.Query) pageData {
	page := b.ctl.View(q)
	b.query = page.Query
	base := h.base()

	columns := b.ctl.Columns()
	data := pageData{
		Title:      h.def.Title,
		Singular:   h.def.Singular,
		Base:       base,
		Search:     page.Query.Search,
		SortBy:     page.Query.SortBy,
		Desc:       page.Query.Desc,
		Colspan:    len(columns) + 1,
		Pagination: page.Pagination,
	}
	for _, col := range columns {
		active := col.Key == page.Query.SortBy
		data.Headers = append(data.Headers, header{
			Key:    col.Key,
			Label:  col.Label,
			Href:   sortHref(base, page.Query, col.Key),
			Active: active,
			Desc:   active && page.Query.Desc,
		})
	}
	for _, rec := range page.Rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, col.Display(rec))
		}
		data.Rows = append(data.Rows, row{ID: rec.RecordID(), Cells: cells})
	}
	if page.Pagination.HasPrev() {
		prev := page.Query
		prev.Page--
		data.PrevHref = href(base, prev)
	}
	if page.Pagination.HasNext() {
		next := page.Query
		next.Page++
		data.NextHref = href(base, next)
	}

	if form := b.ctl.Form(); form.IsOpen() {
		data.Form = &formData{Inputs: form.Inputs(), Failed: len(form.Errors())}
	}
	if id, ok := b.ctl.PendingDelete(); ok {
		confirm := &confirmData{ID: id}
		if rec, found := b.ctl.Record(id); found {
			confirm.Label = b.ctl.Label(rec)
		}
		data.Confirm = confirm
	}
	return data
}
