package table

import (
	"strings"
	"time"
)

// TimeLayout formats timestamp cells.
const TimeLayout = "2006-01-02 15:04"

// Record is one entity instance held by a Store.
type Record interface {
	RecordID() string
}

// Column describes one visible field: how it is displayed, searched and
// ordered.
type Column[T any] struct {
	Key   string
	Label string

	display func(T) string
	compare func(a, b T) int
}

// Display returns the cell text for rec. Search matches against this text.
func (c Column[T]) Display(rec T) string {
	if c.display == nil {
		return ""
	}
	return c.display(rec)
}

// Compare orders a and b by the column's natural ordering.
func (c Column[T]) Compare(a, b T) int {
	if c.compare == nil {
		return 0
	}
	return c.compare(a, b)
}

// TextColumn orders lexicographically.
func TextColumn[T any](key, label string, get func(T) string) Column[T] {
	return Column[T]{
		Key:     key,
		Label:   label,
		display: get,
		compare: func(a, b T) int { return strings.Compare(get(a), get(b)) },
	}
}

// BoolColumn displays Yes/No and orders false before true.
func BoolColumn[T any](key, label string, get func(T) bool) Column[T] {
	return Column[T]{
		Key:   key,
		Label: label,
		display: func(rec T) string {
			if get(rec) {
				return "Yes"
			}
			return "No"
		},
		compare: func(a, b T) int {
			av, bv := get(a), get(b)
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		},
	}
}

// TimeColumn orders chronologically. Zero times display as an empty cell.
func TimeColumn[T any](key, label string, get func(T) time.Time) Column[T] {
	return Column[T]{
		Key:   key,
		Label: label,
		display: func(rec T) string {
			t := get(rec)
			if t.IsZero() {
				return ""
			}
			return t.Format(TimeLayout)
		},
		compare: func(a, b T) int { return get(a).Compare(get(b)) },
	}
}

// ListColumn joins values with a comma and orders by the joined text.
func ListColumn[T any](key, label string, get func(T) []string) Column[T] {
	join := func(rec T) string { return strings.Join(get(rec), ", ") }
	return Column[T]{
		Key:     key,
		Label:   label,
		display: join,
		compare: func(a, b T) int { return strings.Compare(join(a), join(b)) },
	}
}
