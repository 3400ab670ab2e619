package repository

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Predicate is a typed filter clause over the scored relation. Predicates
// are composed in the service layer and evaluated by a storage adapter:
// the Postgres adapter renders them to a WHERE clause with positional
// arguments, while in-memory adapters evaluate them directly via Matches.
//
// Field names are logical; adapters map them to concrete columns.
type Predicate interface {
	// SQL renders the clause, appending bind values to args.
	SQL(args *Args, col ColumnMap) string
	// Matches evaluates the clause against a row accessor.
	Matches(get func(field string) interface{}) bool
	// Fields lists the logical fields the clause references.
	Fields() []string
}

// ColumnMap maps logical field names to SQL column expressions.
// Fields absent from the map render as-is.
type ColumnMap map[string]string

func (m ColumnMap) resolve(field string) string {
	if m != nil {
		if expr, ok := m[field]; ok {
			return expr
		}
	}
	return field
}

// Args accumulates positional query arguments ($1, $2, ...)
type Args struct {
	values []interface{}
}

// Add appends a bind value and returns its placeholder
func (a *Args) Add(v interface{}) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// Values returns the accumulated bind values
func (a *Args) Values() []interface{} {
	return a.values
}

// True is the tautology: no constraint
func True() Predicate { return truePred{} }

type truePred struct{}

func (truePred) SQL(*Args, ColumnMap) string           { return "TRUE" }
func (truePred) Matches(func(string) interface{}) bool { return true }
func (truePred) Fields() []string                      { return nil }

// In is the array-membership primitive: field value ∈ values
func In(field string, values []string) Predicate {
	return inPred{field: field, values: values}
}

type inPred struct {
	field  string
	values []string
}

func (p inPred) SQL(args *Args, col ColumnMap) string {
	return fmt.Sprintf("%s = ANY(%s)", col.resolve(p.field), args.Add(pq.Array(p.values)))
}

func (p inPred) Matches(get func(string) interface{}) bool {
	v, ok := get(p.field).(string)
	if !ok {
		return false
	}
	for _, candidate := range p.values {
		if v == candidate {
			return true
		}
	}
	return false
}

func (p inPred) Fields() []string { return []string{p.field} }

// Eq constrains a field to an exact value
func Eq(field string, value interface{}) Predicate {
	return eqPred{field: field, value: value}
}

type eqPred struct {
	field string
	value interface{}
}

func (p eqPred) SQL(args *Args, col ColumnMap) string {
	return fmt.Sprintf("%s = %s", col.resolve(p.field), args.Add(p.value))
}

func (p eqPred) Matches(get func(string) interface{}) bool {
	a, aok := toFloat(p.value)
	b, bok := toFloat(get(p.field))
	if aok && bok {
		return a == b
	}
	return fmt.Sprintf("%v", get(p.field)) == fmt.Sprintf("%v", p.value)
}

func (p eqPred) Fields() []string { return []string{p.field} }

// Range is the closed-interval primitive: lo ≤ field value ≤ hi
func Range(field string, lo, hi float64) Predicate {
	return rangePred{field: field, lo: lo, hi: hi}
}

type rangePred struct {
	field  string
	lo, hi float64
}

func (p rangePred) SQL(args *Args, col ColumnMap) string {
	return fmt.Sprintf("%s BETWEEN %s AND %s", col.resolve(p.field), args.Add(p.lo), args.Add(p.hi))
}

func (p rangePred) Matches(get func(string) interface{}) bool {
	v, ok := toFloat(get(p.field))
	if !ok {
		return false
	}
	return v >= p.lo && v <= p.hi
}

func (p rangePred) Fields() []string { return []string{p.field} }

// Overlaps tests interval overlap between the row's [loField, hiField]
// range and the query's [lo, hi] range
func Overlaps(loField, hiField string, lo, hi float64) Predicate {
	return overlapPred{loField: loField, hiField: hiField, lo: lo, hi: hi}
}

type overlapPred struct {
	loField, hiField string
	lo, hi           float64
}

func (p overlapPred) SQL(args *Args, col ColumnMap) string {
	return fmt.Sprintf("%s <= %s AND %s >= %s",
		col.resolve(p.loField), args.Add(p.hi),
		col.resolve(p.hiField), args.Add(p.lo))
}

func (p overlapPred) Matches(get func(string) interface{}) bool {
	rowLo, ok1 := toFloat(get(p.loField))
	rowHi, ok2 := toFloat(get(p.hiField))
	if !ok1 || !ok2 {
		return false
	}
	return rowLo <= p.hi && rowHi >= p.lo
}

func (p overlapPred) Fields() []string { return []string{p.loField, p.hiField} }

// And combines clauses conjunctively. Tautologies are elided; an empty
// conjunction is the tautology.
func And(ps ...Predicate) Predicate {
	kept := compact(ps)
	if len(kept) == 0 {
		return True()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return andPred{ps: kept}
}

type andPred struct{ ps []Predicate }

func (p andPred) SQL(args *Args, col ColumnMap) string {
	parts := make([]string, len(p.ps))
	for i, sub := range p.ps {
		parts[i] = sub.SQL(args, col)
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

func (p andPred) Matches(get func(string) interface{}) bool {
	for _, sub := range p.ps {
		if !sub.Matches(get) {
			return false
		}
	}
	return true
}

func (p andPred) Fields() []string { return collectFields(p.ps) }

// Or combines clauses disjunctively. An empty disjunction degrades to the
// tautology, matching the "no location constraint" semantics.
func Or(ps ...Predicate) Predicate {
	kept := compact(ps)
	if len(kept) == 0 {
		return True()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return orPred{ps: kept}
}

type orPred struct{ ps []Predicate }

func (p orPred) SQL(args *Args, col ColumnMap) string {
	parts := make([]string, len(p.ps))
	for i, sub := range p.ps {
		parts[i] = sub.SQL(args, col)
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func (p orPred) Matches(get func(string) interface{}) bool {
	for _, sub := range p.ps {
		if sub.Matches(get) {
			return true
		}
	}
	return false
}

func (p orPred) Fields() []string { return collectFields(p.ps) }

// References reports whether the predicate touches the given field
func References(p Predicate, field string) bool {
	for _, f := range p.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

func compact(ps []Predicate) []Predicate {
	kept := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if p == nil {
			continue
		}
		if _, isTrue := p.(truePred); isTrue {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func collectFields(ps []Predicate) []string {
	var fields []string
	for _, p := range ps {
		fields = append(fields, p.Fields()...)
	}
	return fields
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	case *int:
		if n == nil {
			return 0, false
		}
		return float64(*n), true
	}
	return 0, false
}
