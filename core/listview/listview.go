// Package listview is the search → sort → paginate pipeline shared by every list screen.
package listview

import (
	"reflect"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var ErrInvalidDirection = errors.New("invalid sort direction")

// ParseDirection accepts asc/desc in any case; empty means Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	return "", errors.Wrapf(ErrInvalidDirection, "%q", s)
}

func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// Filter keeps the items where at least one of fields, rendered as text, contains term
// case-insensitively. An empty term returns items unchanged; missing fields never match.
func Filter[T any](items []T, fields []string, term string) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		v := reflect.ValueOf(item)
		for _, field := range fields {
			rv, ok := resolve(v, field)
			if ok && strings.Contains(strings.ToLower(text(rv)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Sort returns a stably sorted copy of items ordered by field. Items where field is
// missing come before every item that has it. Desc reverses the comparison, so ties
// keep their input order in both directions. An empty field returns items unchanged.
func Sort[T any](items []T, field string, dir Direction) []T {
	if field == "" {
		return items
	}
	type keyed struct {
		item T
		key  reflect.Value
		ok   bool
	}
	ks := make([]keyed, len(items))
	for i, item := range items {
		k, ok := resolve(reflect.ValueOf(item), field)
		ks[i] = keyed{item: item, key: k, ok: ok}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		var c int
		switch {
		case !a.ok && !b.ok:
			c = 0
		case !a.ok:
			c = -1
		case !b.ok:
			c = 1
		default:
			c = compare(a.key, b.key)
		}
		if dir == Desc {
			return -c
		}
		return c
	})
	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// Page is one page of a list plus the metadata a pager needs.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Paginate returns page of items in pages of size. The page is clamped into
// [1, TotalPages], and is 1 for an empty list. A size below 1 is treated as 1.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	switch {
	case totalPages == 0:
		page = 1
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}
	start := min((page-1)*size, total)
	end := min(start+size, total)
	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])
	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
