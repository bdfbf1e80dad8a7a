package table

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/odyssey-erp/rbac-console/internal/shared"
)

// Query carries the list controls: free-text search, sort column and
// direction, and a zero-based page index.
type Query struct {
	Search string
	SortBy string
	Desc   bool
	Page   int
}

// Page is the display-ready projection of a store.
type Page[T any] struct {
	Rows       []T
	Query      Query
	Pagination shared.Pagination
}

// Empty reports whether no rows matched.
func (p Page[T]) Empty() bool {
	return p.Pagination.Total == 0
}

// project filters, sorts and paginates records, in that order. Matching is
// case-insensitive using Unicode case folding. Unknown sort keys keep store
// order. Surrounding whitespace is not part of the search. The page index is
// clamped, so project never fails.
func project[T any](records []T, columns []Column[T], q Query, pageSize int) Page[T] {
	q.Search = strings.TrimSpace(q.Search)
	rows := filterRecords(records, columns, q.Search)

	if col, ok := findColumn(columns, q.SortBy); ok {
		slices.SortStableFunc(rows, func(a, b T) int {
			if q.Desc {
				return col.Compare(b, a)
			}
			return col.Compare(a, b)
		})
	} else {
		q.SortBy = ""
		q.Desc = false
	}

	pagination := shared.NewPagination(q.Page, pageSize, len(rows))
	q.Page = pagination.Page
	return Page[T]{
		Rows:       slices.Clone(rows[pagination.Offset():pagination.End()]),
		Query:      q,
		Pagination: pagination,
	}
}

func filterRecords[T any](records []T, columns []Column[T], search string) []T {
	if search == "" {
		return slices.Clone(records)
	}
	fold := cases.Fold()
	needle := fold.String(search)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		for _, col := range columns {
			if strings.Contains(fold.String(col.Display(rec)), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func findColumn[T any](columns []Column[T], key string) (Column[T], bool) {
	if key == "" {
		return Column[T]{}, false
	}
	for _, col := range columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}
