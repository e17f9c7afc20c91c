package pagination

import (
	"fmt"
	"strings"

	"github.com/templui/goalnote/internal/apperror"
)

// SortOrder orders rows by their identity column.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// ParseSortOrder accepts "newest" or "oldest"; empty means newest.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	default:
		return "", apperror.BadRequest(fmt.Sprintf("sortOrder must be one of: %s, %s", SortNewest, SortOldest))
	}
}

// Params describes one page request. Cursor is the id of the first row of the
// page being requested; zero means the first page.
type Params struct {
	Cursor int64
	Size   int
	Sort   SortOrder
}

func (p Params) Validate() error {
	if p.Size <= 0 {
		return apperror.BadRequest("size must be a positive integer")
	}
	if p.Cursor < 0 {
		return apperror.BadRequest("cursor must not be negative")
	}
	if p.Sort != SortNewest && p.Sort != SortOldest {
		return apperror.BadRequest("invalid sortOrder")
	}
	return nil
}

// Boundary returns the cursor predicate for column, or an empty string when
// there is no cursor. The predicate is inclusive so the cursor row itself is
// the first row of the page.
func (p Params) Boundary(column string) (string, []any) {
	if p.Cursor <= 0 {
		return "", nil
	}
	if p.Sort == SortOldest {
		return column + " >= ?", []any{p.Cursor}
	}
	return column + " <= ?", []any{p.Cursor}
}

// OrderBy returns the ORDER BY expression for column.
func (p Params) OrderBy(column string) string {
	if p.Sort == SortOldest {
		return column + " ASC"
	}
	return column + " DESC"
}

// Limit is the number of rows to fetch: one more than the page size, so the
// presence of a following page can be detected without a second query.
func (p Params) Limit() int {
	return p.Size + 1
}

// Page is one page of rows plus the cursor for the next one.
type Page[T any] struct {
	Items      []T
	NextCursor *int64
	TotalCount int
}

// Build turns the size+1 fetched rows into a page. When more than Size rows
// were fetched the next cursor is the id of the row at index Size, which is
// where the following page starts.
func Build[T any](rows []T, p Params, total int, id func(T) int64) Page[T] {
	page := Page[T]{
		Items:      rows,
		TotalCount: total,
	}

	if len(rows) > p.Size {
		next := id(rows[p.Size])
		page.NextCursor = &next
		page.Items = rows[:p.Size]
	}

	if page.Items == nil {
		page.Items = []T{}
	}

	return page
}
