package matchkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/mfulz/strategist/matchkey"
)

func optGen[T comparable](values *rapid.Generator[T]) *rapid.Generator[matchkey.Opt[T]] {
	return rapid.Custom(func(t *rapid.T) matchkey.Opt[T] {
		if rapid.Bool().Draw(t, "wildcard") {
			return matchkey.Any[T]()
		}
		return matchkey.Some(values.Draw(t, "value"))
	})
}

// Small domains so that equal values show up often.
var (
	intSlot = optGen(rapid.IntRange(0, 3))
	strSlot = optGen(rapid.SampledFrom([]string{"x", "y", "z"}))
	unitGen = rapid.Custom(func(t *rapid.T) unitKey {
		return unitKey{A: intSlot.Draw(t, "a"), B: strSlot.Draw(t, "b")}
	})
)

func slotAccepts(rule, query matchkey.Slot) bool {
	if rule.IsWildcard() {
		return true
	}
	return !query.IsWildcard() && rule.Value() == query.Value()
}

func TestMatch_Table(t *testing.T) {
	tests := []struct {
		name  string
		rule  matchkey.Key
		query matchkey.Key
		want  bool
	}{
		{
			name:  "exact",
			rule:  unitKey{A: matchkey.Some(1), B: matchkey.Some("x")},
			query: unitKey{A: matchkey.Some(1), B: matchkey.Some("x")},
			want:  true,
		},
		{
			name:  "rule wildcard absorbs query value",
			rule:  unitKey{A: matchkey.Some(1)},
			query: unitKey{A: matchkey.Some(1), B: matchkey.Some("y")},
			want:  true,
		},
		{
			name:  "rule wildcard absorbs query wildcard",
			rule:  unitKey{A: matchkey.Some(1)},
			query: unitKey{A: matchkey.Some(1)},
			want:  true,
		},
		{
			name:  "query wildcard does not satisfy concrete rule",
			rule:  unitKey{A: matchkey.Some(1), B: matchkey.Some("x")},
			query: unitKey{A: matchkey.Some(1)},
			want:  false,
		},
		{
			name:  "different value",
			rule:  unitKey{A: matchkey.Some(1)},
			query: unitKey{A: matchkey.Some(2)},
			want:  false,
		},
		{
			name:  "catch-all",
			rule:  unitKey{},
			query: unitKey{A: matchkey.Some(9), B: matchkey.Some("z")},
			want:  true,
		},
		{
			name:  "other category",
			rule:  unitKey{},
			query: itemKey{},
			want:  false,
		},
		{
			name:  "same category, other type",
			rule:  unitKey{A: matchkey.Some(1)},
			query: twinKey{A: matchkey.Some(1)},
			want:  false,
		},
		{
			name:  "nil query",
			rule:  unitKey{},
			query: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchkey.Match(tt.rule, tt.query))
		})
	}
}

func TestExplain(t *testing.T) {
	ok, m := matchkey.Explain(
		unitKey{A: matchkey.Some(1), B: matchkey.Some("x")},
		unitKey{A: matchkey.Some(1), B: matchkey.Some("y")},
	)
	assert.False(t, ok)
	assert.Equal(t, matchkey.Mismatch{Field: "b", Rule: "x", Query: "y"}, m)

	ok, m = matchkey.Explain(unitKey{A: matchkey.Some(1)}, unitKey{})
	assert.False(t, ok)
	assert.Equal(t, matchkey.Mismatch{Field: "a", Rule: "1", Query: "*"}, m)

	ok, m = matchkey.Explain(unitKey{}, itemKey{})
	assert.False(t, ok)
	assert.Equal(t, matchkey.Mismatch{Field: "category", Rule: "unit", Query: "item"}, m)

	ok, m = matchkey.Explain(unitKey{}, twinKey{})
	assert.False(t, ok)
	assert.Equal(t, matchkey.Mismatch{Field: "type", Rule: "matchkey_test.unitKey", Query: "matchkey_test.twinKey"}, m)

	ok, m = matchkey.Explain(unitKey{}, unitKey{A: matchkey.Some(3)})
	assert.True(t, ok)
	assert.Zero(t, m)
}

func TestMatch_InterfaceSlots(t *testing.T) {
	one := looseKey{V: matchkey.Some[any](1)}

	assert.True(t, matchkey.Match(one, looseKey{V: matchkey.Some[any](1)}))
	assert.False(t, matchkey.Match(one, looseKey{V: matchkey.Some[any](int64(1))}))
	assert.NotPanics(t, func() {
		slice := looseKey{V: matchkey.Some[any]([]int{1})}
		assert.False(t, matchkey.Match(slice, slice))
	})
}

func TestProperty_MatchIsFieldwise(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rule := unitGen.Draw(t, "rule")
		query := unitGen.Draw(t, "query")

		want := slotAccepts(rule.A, query.A) && slotAccepts(rule.B, query.B)
		if got := matchkey.Match(rule, query); got != want {
			t.Fatalf("Match(%s, %s) = %v, want %v", matchkey.Format(rule), matchkey.Format(query), got, want)
		}
	})
}

func TestProperty_WildcardAbsorption(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 3).Draw(t, "a")
		rule := unitKey{A: matchkey.Some(a)}
		query := unitKey{A: matchkey.Some(a), B: strSlot.Draw(t, "b")}

		if !matchkey.Match(rule, query) {
			t.Fatalf("%s should absorb %s", matchkey.Format(rule), matchkey.Format(query))
		}
	})
}

func TestProperty_WildcardAsymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 3).Draw(t, "a")
		b := rapid.SampledFrom([]string{"x", "y"}).Draw(t, "b")
		rule := unitKey{A: matchkey.Some(a), B: matchkey.Some(b)}
		query := unitKey{A: matchkey.Some(a)}

		if matchkey.Match(rule, query) {
			t.Fatalf("query wildcard satisfied concrete rule %s", matchkey.Format(rule))
		}
		if !matchkey.Match(query, rule) {
			t.Fatalf("%s used as rule should absorb %s", matchkey.Format(query), matchkey.Format(rule))
		}
	})
}

func TestProperty_CatchAllMatchesCategory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		query := unitGen.Draw(t, "query")
		if !matchkey.Match(unitKey{}, query) {
			t.Fatalf("catch-all rejected %s", matchkey.Format(query))
		}
	})
}

func TestProperty_CategoryExclusivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := unitGen.Draw(t, "unit")
		i := itemKey(u)

		if matchkey.Match(u, i) || matchkey.Match(i, u) {
			t.Fatalf("%s and %s matched across categories", matchkey.Format(u), matchkey.Format(i))
		}
	})
}

func TestProperty_MatchIsStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rule := unitGen.Draw(t, "rule")
		query := unitGen.Draw(t, "query")
		ruleCopy, queryCopy := rule, query

		first := matchkey.Match(rule, query)
		for i := 0; i < 3; i++ {
			if matchkey.Match(rule, query) != first {
				t.Fatal("Match changed its answer")
			}
		}
		if rule != ruleCopy || query != queryCopy {
			t.Fatal("Match mutated its arguments")
		}
	})
}

func TestProperty_EqualIsStructural(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := unitGen.Draw(t, "a")
		b := unitGen.Draw(t, "b")

		if matchkey.Equal(a, b) != (a == b) {
			t.Fatalf("Equal(%s, %s) disagrees with ==", matchkey.Format(a), matchkey.Format(b))
		}
		if matchkey.Equal(a, b) != matchkey.Equal(b, a) {
			t.Fatal("Equal is not symmetric")
		}
		if matchkey.Equal(a, b) && !matchkey.Match(a, b) {
			t.Fatal("equal keys must match")
		}
	})
}
