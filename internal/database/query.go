package database

import (
	"fmt"

	"gorm.io/gorm"
)

// FilterOperator identifies the SQL comparison a Filter applies.
type FilterOperator int

// FilterOperator values.
const (
	OpEqual FilterOperator = iota
	OpNotEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual
	OpLike
	OpIn
	OpBetween
)

// String returns the SQL spelling of the operator.
func (o FilterOperator) String() string {
	switch o {
	case OpNotEqual:
		return "!="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqual:
		return ">="
	case OpLessThan:
		return "<"
	case OpLessThanOrEqual:
		return "<="
	case OpLike:
		return "LIKE"
	case OpIn:
		return "IN"
	case OpBetween:
		return "BETWEEN"
	default:
		return "="
	}
}

// Filter is a single WHERE condition.
type Filter struct {
	field    string
	operator FilterOperator
	value    any
	upper    any // BETWEEN upper bound
}

// NewFilter creates a Filter comparing field against value.
func NewFilter(field string, operator FilterOperator, value any) Filter {
	return Filter{field: field, operator: operator, value: value}
}

// NewBetweenFilter creates an inclusive BETWEEN filter over [low, high].
func NewBetweenFilter(field string, low, high any) Filter {
	return Filter{field: field, operator: OpBetween, value: low, upper: high}
}

// Field returns the column the filter applies to.
func (f Filter) Field() string { return f.field }

// Operator returns the comparison operator.
func (f Filter) Operator() FilterOperator { return f.operator }

// Value returns the comparison value (the lower bound for BETWEEN).
func (f Filter) Value() any { return f.value }

func (f Filter) apply(db *gorm.DB) *gorm.DB {
	switch f.operator {
	case OpIn:
		return db.Where(fmt.Sprintf("%s IN ?", f.field), f.value)
	case OpBetween:
		return db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", f.field), f.value, f.upper)
	default:
		return db.Where(fmt.Sprintf("%s %s ?", f.field, f.operator), f.value)
	}
}

// SortDirection selects ascending or descending ordering.
type SortDirection int

// SortDirection values.
const (
	SortAsc SortDirection = iota
	SortDesc
)

// String returns the SQL spelling of the direction.
func (s SortDirection) String() string {
	if s == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// OrderBy is a single ORDER BY term.
type OrderBy struct {
	field     string
	direction SortDirection
}

// Field returns the column the ordering applies to.
func (o OrderBy) Field() string { return o.field }

// Direction returns the sort direction.
func (o OrderBy) Direction() SortDirection { return o.direction }

// Query accumulates filters, ordering, and pagination and applies them to a
// GORM session. The zero value matches everything; methods return modified
// copies so a base query can be extended without side effects.
type Query struct {
	filters []Filter
	orders  []OrderBy
	limit   int
	offset  int
}

// NewQuery creates an empty Query.
func NewQuery() Query {
	return Query{}
}

// Where adds a filter condition.
func (q Query) Where(field string, operator FilterOperator, value any) Query {
	q.filters = append(q.filters, NewFilter(field, operator, value))
	return q
}

// WhereBetween adds an inclusive BETWEEN filter.
func (q Query) WhereBetween(field string, low, high any) Query {
	q.filters = append(q.filters, NewBetweenFilter(field, low, high))
	return q
}

// Equal adds an equality filter.
func (q Query) Equal(field string, value any) Query {
	return q.Where(field, OpEqual, value)
}

// NotEqual adds a not-equal filter.
func (q Query) NotEqual(field string, value any) Query {
	return q.Where(field, OpNotEqual, value)
}

// GreaterThan adds a greater-than filter.
func (q Query) GreaterThan(field string, value any) Query {
	return q.Where(field, OpGreaterThan, value)
}

// GreaterThanOrEqual adds a greater-than-or-equal filter.
func (q Query) GreaterThanOrEqual(field string, value any) Query {
	return q.Where(field, OpGreaterThanOrEqual, value)
}

// LessThan adds a less-than filter.
func (q Query) LessThan(field string, value any) Query {
	return q.Where(field, OpLessThan, value)
}

// LessThanOrEqual adds a less-than-or-equal filter.
func (q Query) LessThanOrEqual(field string, value any) Query {
	return q.Where(field, OpLessThanOrEqual, value)
}

// Like adds a LIKE filter.
func (q Query) Like(field string, pattern string) Query {
	return q.Where(field, OpLike, pattern)
}

// In adds an IN filter; values must be a slice.
func (q Query) In(field string, values any) Query {
	return q.Where(field, OpIn, values)
}

// Order adds an ordering term.
func (q Query) Order(field string, direction SortDirection) Query {
	q.orders = append(q.orders, OrderBy{field: field, direction: direction})
	return q
}

// OrderAsc adds ascending ordering.
func (q Query) OrderAsc(field string) Query {
	return q.Order(field, SortAsc)
}

// OrderDesc adds descending ordering.
func (q Query) OrderDesc(field string) Query {
	return q.Order(field, SortDesc)
}

// Limit caps the number of rows returned (0 means no limit).
func (q Query) Limit(limit int) Query {
	q.limit = limit
	return q
}

// Offset skips the first offset rows.
func (q Query) Offset(offset int) Query {
	q.offset = offset
	return q
}

// Paginate sets limit and offset from a 1-based page number.
func (q Query) Paginate(page, pageSize int) Query {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	q.limit = pageSize
	q.offset = (page - 1) * pageSize
	return q
}

// Filters returns a copy of the filter conditions.
func (q Query) Filters() []Filter {
	out := make([]Filter, len(q.filters))
	copy(out, q.filters)
	return out
}

// Orders returns a copy of the ordering terms.
func (q Query) Orders() []OrderBy {
	out := make([]OrderBy, len(q.orders))
	copy(out, q.orders)
	return out
}

// LimitValue returns the configured limit (0 means no limit).
func (q Query) LimitValue() int {
	return q.limit
}

// OffsetValue returns the configured offset.
func (q Query) OffsetValue() int {
	return q.offset
}

// Apply attaches the query's conditions to a GORM session.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	out := db
	for _, f := range q.filters {
		out = f.apply(out)
	}
	for _, o := range q.orders {
		out = out.Order(fmt.Sprintf("%s %s", o.field, o.direction))
	}
	if q.limit > 0 {
		out = out.Limit(q.limit)
	}
	if q.offset > 0 {
		out = out.Offset(q.offset)
	}
	return out
}
