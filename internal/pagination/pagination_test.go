package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalnote/internal/apperror"
)

type row struct{ id int64 }

func rowID(r row) int64 { return r.id }

func rows(ids ...int64) []row {
	out := make([]row, 0, len(ids))
	for _, id := range ids {
		out = append(out, row{id: id})
	}
	return out
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, order)

	order, err = ParseSortOrder("Oldest")
	require.NoError(t, err)
	assert.Equal(t, SortOldest, order)

	_, err = ParseSortOrder("sideways")
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, Params{Size: 1, Sort: SortNewest}.Validate())
	assert.Error(t, Params{Size: 0, Sort: SortNewest}.Validate())
	assert.Error(t, Params{Size: -3, Sort: SortNewest}.Validate())
	assert.Error(t, Params{Size: 5, Cursor: -1, Sort: SortNewest}.Validate())
	assert.Error(t, Params{Size: 5, Sort: "random"}.Validate())
}

func TestBoundary(t *testing.T) {
	clause, args := Params{Size: 5, Sort: SortNewest}.Boundary("id")
	assert.Empty(t, clause)
	assert.Nil(t, args)

	clause, args = Params{Cursor: 42, Size: 5, Sort: SortNewest}.Boundary("id")
	assert.Equal(t, "id <= ?", clause)
	assert.Equal(t, []any{int64(42)}, args)

	clause, args = Params{Cursor: 42, Size: 5, Sort: SortOldest}.Boundary("id")
	assert.Equal(t, "id >= ?", clause)
	assert.Equal(t, []any{int64(42)}, args)
}

func TestOrderByAndLimit(t *testing.T) {
	assert.Equal(t, "id DESC", Params{Size: 20, Sort: SortNewest}.OrderBy("id"))
	assert.Equal(t, "id ASC", Params{Size: 20, Sort: SortOldest}.OrderBy("id"))
	assert.Equal(t, 21, Params{Size: 20}.Limit())
}

func TestBuildWithFollowingPage(t *testing.T) {
	p := Params{Size: 3, Sort: SortNewest}

	page := Build(rows(10, 9, 8, 7), p, 12, rowID)

	assert.Equal(t, rows(10, 9, 8), page.Items)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, int64(7), *page.NextCursor)
	assert.Equal(t, 12, page.TotalCount)
}

func TestBuildLastPage(t *testing.T) {
	p := Params{Size: 3, Sort: SortOldest}

	page := Build(rows(4, 5, 6), p, 6, rowID)

	assert.Equal(t, rows(4, 5, 6), page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestBuildEmpty(t *testing.T) {
	page := Build[row](nil, Params{Size: 20, Sort: SortNewest}, 0, rowID)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
	assert.Zero(t, page.TotalCount)
}

// Simulates repeated fetches against an in-memory id set to check that
// following next cursors visits every row once, for several page sizes.
func TestTraversalVisitsEveryRowOnce(t *testing.T) {
	var all []int64
	for id := int64(1); id <= 23; id++ {
		all = append(all, id)
	}

	fetch := func(p Params) []row {
		var out []row
		for i := range all {
			id := all[i]
			if p.Sort == SortNewest {
				id = all[len(all)-1-i]
			}
			if p.Cursor > 0 {
				if p.Sort == SortNewest && id > p.Cursor {
					continue
				}
				if p.Sort == SortOldest && id < p.Cursor {
					continue
				}
			}
			out = append(out, row{id: id})
			if len(out) == p.Limit() {
				break
			}
		}
		return out
	}

	for _, sort := range []SortOrder{SortNewest, SortOldest} {
		for _, size := range []int{1, 2, 5, 7, 22, 23, 50} {
			p := Params{Size: size, Sort: sort}
			seen := map[int64]int{}
			var order []int64

			for {
				page := Build(fetch(p), p, len(all), rowID)
				for _, r := range page.Items {
					seen[r.id]++
					order = append(order, r.id)
				}
				if page.NextCursor == nil {
					break
				}
				p.Cursor = *page.NextCursor
			}

			assert.Len(t, seen, len(all), "sort=%s size=%d", sort, size)
			for id, n := range seen {
				assert.Equal(t, 1, n, "id %d visited %d times (sort=%s size=%d)", id, n, sort, size)
			}
			if sort == SortNewest {
				assert.Equal(t, int64(23), order[0])
			} else {
				assert.Equal(t, int64(1), order[0])
			}
		}
	}
}
