package property

import (
	"math/big"
	"time"
)

// Values is a closed set: only the types in this file implement it.
type Values interface {
	// Len returns the number of values.
	Len() int
	// Slice returns the values boxed as []any.
	Slice() []any

	isValues()
}

type (
	StringValues   []string
	IDValues       []string
	IntegerValues  []int64
	BooleanValues  []bool
	DateTimeValues []time.Time
	DecimalValues  []*big.Float
	URIValues      []string
	HTMLValues     []string
)

func (StringValues) isValues()   {}
func (IDValues) isValues()       {}
func (IntegerValues) isValues()  {}
func (BooleanValues) isValues()  {}
func (DateTimeValues) isValues() {}
func (DecimalValues) isValues()  {}
func (URIValues) isValues()      {}
func (HTMLValues) isValues()     {}

func (v StringValues) Len() int   { return len(v) }
func (v IDValues) Len() int       { return len(v) }
func (v IntegerValues) Len() int  { return len(v) }
func (v BooleanValues) Len() int  { return len(v) }
func (v DateTimeValues) Len() int { return len(v) }
func (v DecimalValues) Len() int  { return len(v) }
func (v URIValues) Len() int      { return len(v) }
func (v HTMLValues) Len() int     { return len(v) }

func (v StringValues) Slice() []any   { return box(v) }
func (v IDValues) Slice() []any       { return box(v) }
func (v IntegerValues) Slice() []any  { return box(v) }
func (v BooleanValues) Slice() []any  { return box(v) }
func (v DateTimeValues) Slice() []any { return box(v) }
func (v DecimalValues) Slice() []any  { return box(v) }
func (v URIValues) Slice() []any      { return box(v) }
func (v HTMLValues) Slice() []any     { return box(v) }

func box[T any](v []T) []any {
	out := make([]any, len(v))
	for i := range v {
		out[i] = v[i]
	}
	return out
}

// Data is one converted property.
type Data struct {
	ID string

	// Cardinality is the definition's cardinality when Data came out of
	// Convert. Zero means unknown.
	Cardinality Cardinality

	Values Values
}

// Type reports the kind carried by d.Values.
func (d Data) Type() Type {
	switch d.Values.(type) {
	case StringValues:
		return TypeString
	case IDValues:
		return TypeID
	case IntegerValues:
		return TypeInteger
	case BooleanValues:
		return TypeBoolean
	case DateTimeValues:
		return TypeDateTime
	case DecimalValues:
		return TypeDecimal
	case URIValues:
		return TypeURI
	case HTMLValues:
		return TypeHTML
	default:
		return 0
	}
}

// First returns the first value, or nil for an empty property.
func (d Data) First() any {
	if d.Values == nil || d.Values.Len() == 0 {
		return nil
	}
	return d.Values.Slice()[0]
}

// FirstString returns the first value of a string-like property.
func (d Data) FirstString() (string, bool) {
	switch v := d.Values.(type) {
	case StringValues:
		if len(v) > 0 {
			return v[0], true
		}
	case IDValues:
		if len(v) > 0 {
			return v[0], true
		}
	case URIValues:
		if len(v) > 0 {
			return v[0], true
		}
	case HTMLValues:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}
