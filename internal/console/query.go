package console

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/odyssey-erp/rbac-console/internal/table"
)

// Query string keys of the list view. The page parameter is one-based.
const (
	paramSearch = "search"
	paramSort   = "sort"
	paramDir    = "dir"
	paramPage   = "page"

	dirDesc = "desc"
)

func parseQuery(values url.Values) table.Query {
	q := table.Query{
		Search: strings.TrimSpace(values.Get(paramSearch)),
		SortBy: values.Get(paramSort),
		Desc:   strings.EqualFold(values.Get(paramDir), dirDesc),
	}
	if page, err := strconv.Atoi(values.Get(paramPage)); err == nil && page > 1 {
		q.Page = page - 1
	}
	return q
}

func encodeQuery(q table.Query) url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set(paramSearch, q.Search)
	}
	if q.SortBy != "" {
		values.Set(paramSort, q.SortBy)
		if q.Desc {
			values.Set(paramDir, dirDesc)
		}
	}
	if q.Page > 0 {
		values.Set(paramPage, strconv.Itoa(q.Page+1))
	}
	return values
}

func href(base string, q table.Query) string {
	if encoded := encodeQuery(q).Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}

// sortHref toggles the direction when key is already the sort column and
// returns to the first page.
func sortHref(base string, q table.Query, key string) string {
	next := table.Query{Search: q.Search, SortBy: key}
	if q.SortBy == key && !q.Desc {
		next.Desc = true
	}
	return href(base, next)
}
