package magento

import (
	"fmt"
	"net/url"
	"strconv"
)

// Condition types accepted by Magento search criteria filters.
const (
	ConditionEq   = "eq"
	ConditionNeq  = "neq"
	ConditionIn   = "in"
	ConditionNin  = "nin"
	ConditionGt   = "gt"
	ConditionGteq = "gteq"
	ConditionLt   = "lt"
	ConditionLteq = "lteq"
	ConditionLike = "like"
)

// Filter is a single search criteria predicate. An empty ConditionType
// leaves the choice to the server (which defaults to "eq").
type Filter struct {
	Field         string
	Value         any
	ConditionType string
}

// SortOrder sorts a listing by a field, direction "ASC" or "DESC".
type SortOrder struct {
	Field     string
	Direction string
}

// Query builds the search criteria of Magento listing endpoints. Filters
// within a group are ORed together; groups are ANDed.
type Query struct {
	groups      [][]Filter
	sortOrders  []SortOrder
	currentPage int
	pageSize    int
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// FieldValueQuery returns a query matching a single field against a
// value with the server's default condition type.
func FieldValueQuery(field string, value any) *Query {
	return NewQuery().Filter(Filter{Field: field, Value: value})
}

// Filter appends a filter group containing the given filters.
func (q *Query) Filter(filters ...Filter) *Query {
	q.groups = append(q.groups, filters)
	return q
}

// SortBy appends a sort order.
func (q *Query) SortBy(field, direction string) *Query {
	q.sortOrders = append(q.sortOrders, SortOrder{Field: field, Direction: direction})
	return q
}

// Page sets explicit pagination parameters. Paginated iteration overrides
// the current page but honors the page size.
func (q *Query) Page(currentPage, pageSize int) *Query {
	q.currentPage = currentPage
	q.pageSize = pageSize
	return q
}

// Values encodes the query as Magento search criteria parameters, e.g.
//
//	searchCriteria[filter_groups][0][filters][0][field]=status
//	searchCriteria[filter_groups][0][filters][0][value]=processing
//
// A nil query encodes to no parameters.
func (q *Query) Values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}

	for gi, group := range q.groups {
		for fi, f := range group {
			prefix := fmt.Sprintf("searchCriteria[filter_groups][%d][filters][%d]", gi, fi)
			v.Set(prefix+"[field]", f.Field)
			v.Set(prefix+"[value]", fmt.Sprint(f.Value))
			if f.ConditionType != "" {
				v.Set(prefix+"[condition_type]", f.ConditionType)
			}
		}
	}

	for si, s := range q.sortOrders {
		prefix := fmt.Sprintf("searchCriteria[sortOrders][%d]", si)
		v.Set(prefix+"[field]", s.Field)
		v.Set(prefix+"[direction]", s.Direction)
	}

	if q.pageSize > 0 {
		v.Set("searchCriteria[pageSize]", strconv.Itoa(q.pageSize))
	}
	if q.currentPage > 0 {
		v.Set("searchCriteria[currentPage]", strconv.Itoa(q.currentPage))
	}

	return v
}
