package httpapi

import (
	"net/url"
	"strconv"

	"github.com/diasKarataev/todo-client/repository"
)

// BuildQuery turns a TaskQuery into the wire parameter set. Pure and
// deterministic: the same query always encodes to the same string, which
// keeps refetches idempotent and the mapping testable.
//
// String filters are omitted entirely when empty; star is always sent as an
// explicit boolean; sortField/sortOrder appear only when an ordering is
// actually requested.
func BuildQuery(q repository.TaskQuery) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page.Number))
	v.Set("pageSize", strconv.Itoa(q.Page.Size))
	v.Set("star", strconv.FormatBool(q.Filter.Starred))

	if q.Filter.Name != "" {
		v.Set("name", q.Filter.Name)
	}
	if q.Filter.Details != "" {
		v.Set("details", q.Filter.Details)
	}

	if q.Sort.Field != repository.SortNone {
		order := q.Sort.Order
		if order == "" {
			order = repository.OrderAsc
		}
		v.Set("sortField", string(q.Sort.Field))
		v.Set("sortOrder", string(order))
	}

	return v
}
