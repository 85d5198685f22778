package matchkey

import (
	"fmt"
	"reflect"
)

// Mismatch describes why a rule key rejected a query key.
type Mismatch struct {
	Field string
	Rule  string
	Query string
}

// Match reports whether the rule key accepts the query key.
//
// Keys of different categories, concrete types or schemas never match. For
// every field a wildcard in rule passes; a concrete rule slot passes only when the query
// slot holds an equal value. Wildcards in query are not wildcards: they fail
// against any concrete rule slot.
func Match(rule, query Key) bool {
	ok, _ := Explain(rule, query)
	return ok
}

// Explain is Match that also returns the first failing comparison.
func Explain(rule, query Key) (bool, Mismatch) {
	if rule == nil || query == nil {
		return false, Mismatch{Field: "key", Rule: Format(rule), Query: Format(query)}
	}
	if rule.Category() != query.Category() {
		return false, Mismatch{Field: "category", Rule: string(rule.Category()), Query: string(query.Category())}
	}
	if rt, qt := reflect.TypeOf(rule), reflect.TypeOf(query); rt != qt {
		return false, Mismatch{Field: "type", Rule: fmt.Sprint(rt), Query: fmt.Sprint(qt)}
	}

	rf, qf := rule.Fields(), query.Fields()
	if len(rf) != len(qf) {
		return false, Mismatch{Field: "fields", Rule: Format(rule), Query: Format(query)}
	}
	for i, f := range rf {
		q := qf[i]
		if f.Name != q.Name {
			return false, Mismatch{Field: f.Name, Rule: f.Name, Query: q.Name}
		}
		if f.Slot.IsWildcard() {
			continue
		}
		if q.Slot.IsWildcard() || !sameValue(f.Slot.Value(), q.Slot.Value()) {
			return false, Mismatch{Field: f.Name, Rule: f.Slot.String(), Query: q.Slot.String()}
		}
	}
	return true, Mismatch{}
}
