package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/listview"
)

const (
	searchParam   = "search"
	orderingParam = "ordering"
	orderParam    = "order"
	pageParam     = "page"
	pageSizeParam = "page_size"
)

// ListQuery carries the list view parameters of a collection endpoint:
//
//	?search=emma&ordering=-lastName&page=2&page_size=20
//
// A leading "-" on ordering sorts descending; order=asc|desc overrides it.
type ListQuery struct {
	Search    string
	SortField string
	SortDir   listview.Direction
	Page      int
	PageSize  int
}

// Bind reads the query string. Unparsable page numbers fall back to the defaults.
func (q *ListQuery) Bind(ctx echo.Context, defaultPageSize int) error {
	q.Search = core.CleanString(ctx.QueryParam(searchParam))
	q.SortDir = listview.Asc
	q.Page = 1
	q.PageSize = defaultPageSize

	if ordering := strings.TrimSpace(ctx.QueryParam(orderingParam)); ordering != "" {
		field := strings.TrimSpace(strings.Split(ordering, ",")[0]) // a single sort key is supported
		if strings.HasPrefix(field, "-") {
			field = field[1:] // drop "-"
			q.SortDir = listview.Desc
		}
		q.SortField = field
	}
	if order := ctx.QueryParam(orderParam); order != "" {
		dir, err := listview.ParseDirection(order)
		if err != nil {
			return errors.Wrap(err, "parsing order")
		}
		q.SortDir = dir
	}
	if page, err := strconv.Atoi(ctx.QueryParam(pageParam)); err == nil {
		q.Page = page
	}
	if size, err := strconv.Atoi(ctx.QueryParam(pageSizeParam)); err == nil && size > 0 {
		q.PageSize = size
	}
	return nil
}

// apply runs items through a list view configured from q.
func apply[T any](q ListQuery, fields []string, items []T) listview.Page[T] {
	v := listview.NewView[T](fields, q.SortField)
	v.SortDir = q.SortDir
	v.SetSearch(q.Search)
	return v.Apply(items, q.Page, q.PageSize)
}
