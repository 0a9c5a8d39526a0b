package listview

// Result is one rendered page plus the full filtered and sorted list.
type Result[T any] struct {
	Rows       []T
	All        []T
	Page       int
	PageSize   int
	TotalPages int
	Total      int
}

// First is the 1-based entry number of the first row on the page, or 0 when
// there are no rows.
func (r Result[T]) First() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Page-1)*r.PageSize + 1
}

// Last is the entry number of the last row on the page.
func (r Result[T]) Last() int {
	if r.Total == 0 {
		return 0
	}
	return r.First() + len(r.Rows) - 1
}

// IndexOf returns the position of the first row in All matching match.
func (r Result[T]) IndexOf(match func(T) bool) int {
	for i, row := range r.All {
		if match(row) {
			return i
		}
	}
	return -1
}

// WithPage re-slices the same list at another page.
func (r Result[T]) WithPage(page int) Result[T] {
	return paginate(r.All, r.PageSize, page)
}

// PageWindow returns up to size consecutive page numbers centred on the
// current page where possible.
func (r Result[T]) PageWindow(size int) []int {
	if r.TotalPages == 0 || size <= 0 {
		return nil
	}

	start, end := 1, r.TotalPages
	if r.TotalPages > size {
		before := size / 2
		after := (size+1)/2 - 1
		switch {
		case r.Page <= before:
			start, end = 1, size
		case r.Page+after >= r.TotalPages:
			start, end = r.TotalPages-size+1, r.TotalPages
		default:
			start, end = r.Page-before, r.Page+after
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
