package listview

// View is the per-screen list state: the search term, the fields it applies to and
// the active sort.
type View[T any] struct {
	Fields    []string
	Search    string
	SortField string
	SortDir   Direction
}

// NewView returns a View searching fields, optionally sorted by sortField ascending.
func NewView[T any](fields []string, sortField ...string) *View[T] {
	v := &View[T]{Fields: fields, SortDir: Asc}
	if len(sortField) > 0 {
		v.SortField = sortField[0]
	}
	return v
}

func (v *View[T]) SetSearch(term string) { v.Search = term }

// ToggleSort flips the direction when field is already the sort field and otherwise
// sorts by field ascending.
func (v *View[T]) ToggleSort(field string) {
	if v.SortField == field {
		v.SortDir = v.SortDir.Toggle()
		return
	}
	v.SortField = field
	v.SortDir = Asc
}

// Items filters then sorts items.
func (v *View[T]) Items(items []T) []T {
	return Sort(Filter(items, v.Fields, v.Search), v.SortField, v.SortDir)
}

// Apply filters, sorts and paginates items.
func (v *View[T]) Apply(items []T, page, size int) Page[T] {
	return Paginate(v.Items(items), page, size)
}
