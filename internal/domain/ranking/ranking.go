// Package ranking orders record collections by a chain of sort keys.
//
// Ordering is stable: rows equal on every key keep their input order. The
// input slice is never reordered; callers always receive a fresh slice.
package ranking

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Direction tells whether lower or higher values rank first.
type Direction int

// Supported directions.
const (
	// Ascending ranks lower values first (economy, bowling average).
	Ascending Direction = iota + 1
	// Descending ranks higher values first (runs, wickets, batting average).
	Descending
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Key is one link of a comparator chain.
type Key[T any] struct {
	Name  string
	Value func(T) float64
	Dir   Direction
}

// Asc builds a key where lower values rank first.
func Asc[T any](name string, value func(T) float64) Key[T] {
	return Key[T]{Name: name, Value: value, Dir: Ascending}
}

// Desc builds a key where higher values rank first.
func Desc[T any](name string, value func(T) float64) Key[T] {
	return Key[T]{Name: name, Value: value, Dir: Descending}
}

// Criteria describes a ranking: an optional filter applied first, the keys
// (primary first, then tie-breakers) and an optional truncation.
type Criteria[T any] struct {
	Filter func(T) bool
	Keys   []Key[T]
	// Limit keeps at most Limit rows after sorting; 0 keeps all.
	Limit int
}

func (c Criteria[T]) validate() error {
	if len(c.Keys) == 0 {
		return ErrNoKeys
	}
	for i, k := range c.Keys {
		if k.Value == nil || (k.Dir != Ascending && k.Dir != Descending) {
			return fmt.Errorf("%w: key %d (%q)", ErrInvalidKey, i, k.Name)
		}
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, c.Limit)
	}
	return nil
}

// row caches the key values of an item so derived metrics are evaluated
// once per item instead of once per comparison.
type row[T any] struct {
	item T
	keys []float64
}

// Rank filters, sorts and truncates items according to c.
// It returns ErrEmptyResult when no item passes the filter.
func Rank[T any](items []T, c Criteria[T]) ([]T, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	rows := make([]row[T], 0, len(items))
	for _, it := range items {
		if c.Filter != nil && !c.Filter(it) {
			continue
		}
		keys := make([]float64, len(c.Keys))
		for i, k := range c.Keys {
			keys[i] = k.Value(it)
		}
		rows = append(rows, row[T]{item: it, keys: keys})
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}

	slices.SortStableFunc(rows, func(a, b row[T]) int {
		return compareKeys(a.keys, b.keys, c.Keys)
	})

	n := len(rows)
	if c.Limit > 0 && c.Limit < n {
		n = c.Limit
	}
	out := make([]T, n)
	for i := range out {
		out[i] = rows[i].item
	}
	return out, nil
}

// Top returns the first item of the ranking described by c.
func Top[T any](items []T, c Criteria[T]) (T, error) {
	c.Limit = 1
	ranked, err := Rank(items, c)
	if err != nil {
		var zero T
		return zero, err
	}
	return ranked[0], nil
}

// DenseRanks assigns standings to already ranked items. Items equal on every
// key share a rank and the next distinct item takes the following rank.
func DenseRanks[T any](ranked []T, keys []Key[T]) []int {
	ranks := make([]int, len(ranked))
	if len(ranked) == 0 {
		return ranks
	}

	prev := keyValues(ranked[0], keys)
	current := 1
	ranks[0] = current
	for i := 1; i < len(ranked); i++ {
		vals := keyValues(ranked[i], keys)
		if compareKeys(prev, vals, keys) != 0 {
			current++
		}
		ranks[i] = current
		prev = vals
	}
	return ranks
}

func keyValues[T any](item T, keys []Key[T]) []float64 {
	vals := make([]float64, len(keys))
	for i, k := range keys {
		vals[i] = k.Value(item)
	}
	return vals
}

// compareKeys walks the chain until a key decides.
func compareKeys[T any](a, b []float64, keys []Key[T]) int {
	for i, k := range keys {
		if c := compareValue(a[i], b[i], k.Dir); c != 0 {
			return c
		}
	}
	return 0
}

// compareValue orders two values for a direction. NaN always ranks last so
// an undefined metric can never lead a ranking.
func compareValue(a, b float64, dir Direction) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if dir == Descending {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}
