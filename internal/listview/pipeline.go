// Package listview implements the filter, search, date-range, sort and
// paginate pipeline shared by every tabular screen.
package listview

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/example/frontdesk/internal/dates"
)

// DefaultPageSize is used when a pipeline is built without a page size.
const DefaultPageSize = 10

// Pipeline describes how one screen narrows and orders its rows. Every hook
// is optional.
type Pipeline[T any] struct {
	// Filter is the category predicate (status, floor, type, role...).
	Filter func(T) bool
	// SearchFields returns the strings the search term is matched against.
	SearchFields func(T) []string
	// DateField returns the stored date the range filter applies to.
	DateField func(T) string
	// Compare orders the filtered rows. The sort is stable.
	Compare func(a, b T) int
	// PageSize is the number of rows per page.
	PageSize int
}

// Query carries the user's current filter state.
type Query struct {
	Search string
	From   string
	To     string
	Page   int
}

// Run applies the pipeline stages in order: filter, search, date range,
// sort, paginate.
func (p Pipeline[T]) Run(items []T, q Query) Result[T] {
	term := strings.TrimSpace(q.Search)
	folder := cases.Fold()
	if term != "" {
		term = folder.String(term)
	}
	window := dates.NewRange(q.From, q.To)

	all := make([]T, 0, len(items))
	for _, item := range items {
		if p.Filter != nil && !p.Filter(item) {
			continue
		}
		if term != "" && p.SearchFields != nil && !matches(folder, p.SearchFields(item), term) {
			continue
		}
		if p.DateField != nil && !window.Open() && !window.Contains(p.DateField(item)) {
			continue
		}
		all = append(all, item)
	}

	if p.Compare != nil {
		slices.SortStableFunc(all, p.Compare)
	}

	return paginate(all, p.pageSize(), q.Page)
}

func (p Pipeline[T]) pageSize() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

func matches(folder cases.Caser, fields []string, term string) bool {
	for _, field := range fields {
		if strings.Contains(folder.String(field), term) {
			return true
		}
	}
	return false
}

// Paginate slices an already ordered list without any filtering.
func Paginate[T any](all []T, pageSize, page int) Result[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return paginate(all, pageSize, page)
}

func paginate[T any](all []T, pageSize, page int) Result[T] {
	total := len(all)
	totalPages := (total + pageSize - 1) / pageSize
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		Rows:       all[start:end],
		All:        all,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}
