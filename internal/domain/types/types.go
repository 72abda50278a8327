// Package types contains common types used across the application
package types

import "reflect"

// Kind tells how the Value of a Result is shaped.
type Kind string

// Result kinds.
const (
	KindScalar  Kind = "scalar"  // a single number
	KindRecord  Kind = "record"  // one batting or bowling record
	KindRecords Kind = "records" // an ordered list of records
	KindNames   Kind = "names"   // an ordered list of player names
)

// Result is the answer to a named query.
type Result struct {
	Query string `json:"query"`
	Kind  Kind   `json:"kind"`
	Value any    `json:"value"`
	// Ranks holds dense standings parallel to Value for record lists.
	Ranks []int `json:"ranks,omitempty"`
}

// Len returns the number of rows carried by the result.
func (r Result) Len() int {
	if r.Value == nil {
		return 0
	}
	v := reflect.ValueOf(r.Value)
	if v.Kind() == reflect.Slice {
		return v.Len()
	}
	return 1
}

// Head keeps the first n rows of a list result. Scalars and single records
// are returned unchanged, as is any result already within n.
func (r Result) Head(n int) Result {
	if n < 0 || r.Value == nil {
		return r
	}
	v := reflect.ValueOf(r.Value)
	if v.Kind() != reflect.Slice || v.Len() <= n {
		return r
	}
	r.Value = v.Slice(0, n).Interface()
	if len(r.Ranks) > n {
		r.Ranks = r.Ranks[:n]
	}
	return r
}

// QueryInfo describes one entry of the query catalogue.
type QueryInfo struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
}

// Answer is the outcome of one query in a catalogue run. Err is set when the
// query failed; Error carries its message for encoding.
type Answer struct {
	Query  string  `json:"query"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
	Err    error   `json:"-"`
}
