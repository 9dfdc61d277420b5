package property

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"sort"
	"time"
)

// converter turns a checked, homogeneous, null-free list into typed values.
type converter func(id string, raw []any) (Values, error)

// converters is the dispatch table from declared type to conversion.
var converters = map[Type]converter{
	TypeString:   stringsOf(TypeString, func(v []string) Values { return StringValues(v) }),
	TypeID:       stringsOf(TypeID, func(v []string) Values { return IDValues(v) }),
	TypeURI:      stringsOf(TypeURI, func(v []string) Values { return URIValues(v) }),
	TypeHTML:     stringsOf(TypeHTML, func(v []string) Values { return HTMLValues(v) }),
	TypeInteger:  convertIntegers,
	TypeBoolean:  convertBooleans,
	TypeDateTime: convertDateTimes,
	TypeDecimal:  convertDecimals,
}

/*
Convert checks raw property values against td and converts them.

Rules, applied per property:
  - a Data value must carry the same id it is keyed under
  - the id must be defined by td
  - if filter is non-empty, properties whose updatability is not listed are skipped
  - a list is only allowed for multi-valued properties, a scalar only for single-valued ones
  - lists must not contain nil and must hold one Go type throughout
  - every value must fit the declared type

A nil value yields the property with no values; a typed nil such as a nil
*big.Float is a null value and fails. A Data value is unwrapped by its own
cardinality. The result is sorted by property id.
*/
func Convert(raw map[string]any, td *TypeDefinition, filter ...Updatability) ([]Data, error) {
	if td == nil {
		return nil, ErrNoTypeDefinition
	}
	if raw == nil {
		return nil, nil
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Data, 0, len(ids))
	for _, id := range ids {
		if err := checkID(id, raw[id]); err != nil {
			return nil, err
		}

		def, ok := td.Definition(id)
		if !ok {
			return nil, invalid(id, fmt.Errorf("%w: type %q", ErrUnknownProperty, td.ID))
		}
		if len(filter) > 0 && !slices.Contains(filter, def.Updatability) {
			continue
		}

		d, err := convertOne(def, raw[id])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ConvertValue converts a single property value against its definition.
func ConvertValue(def Definition, value any) (Data, error) {
	return convertOne(def, value)
}

func convertOne(def Definition, value any) (Data, error) {
	id := def.ID

	if err := checkID(id, value); err != nil {
		return Data{}, err
	}
	if d, ok := value.(Data); ok {
		value = unwrapData(def, d)
	}

	list, isList, err := normalize(id, value)
	if err != nil {
		return Data{}, err
	}

	switch {
	case value == nil:
		list = nil
	case isList && def.Cardinality != Multi:
		return Data{}, invalid(id, ErrNotMultiValued)
	case !isList && def.Cardinality != Single:
		return Data{}, invalid(id, ErrNotSingleValued)
	}

	conv, ok := converters[def.Type]
	if !ok {
		return Data{}, invalid(id, fmt.Errorf("%w: %s", ErrUnsupportedType, def.Type))
	}
	vals, err := conv(id, list)
	if err != nil {
		return Data{}, err
	}
	return Data{ID: id, Cardinality: def.Cardinality, Values: vals}, nil
}

// checkID rejects a Data value keyed under a different property id.
func checkID(id string, value any) error {
	if d, ok := value.(Data); ok && d.ID != id {
		return invalid(id, fmt.Errorf("%w: %q != %q", ErrIDMismatch, id, d.ID))
	}
	return nil
}

// unwrapData mirrors how an already-typed property is re-submitted: the first
// value if it was single-valued, the whole list otherwise. A Data without a
// cardinality is read with the target definition's.
func unwrapData(def Definition, d Data) any {
	if d.Values == nil {
		return nil
	}
	card := d.Cardinality
	if card == 0 {
		card = def.Cardinality
	}
	if card == Single {
		return d.First()
	}
	return d.Values.Slice()
}

// normalize boxes value into a list and checks nulls and homogeneity.
func normalize(id string, value any) ([]any, bool, error) {
	if value == nil {
		return nil, false, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		if isNil(rv) {
			return nil, false, invalid(id, ErrNullValue)
		}
		return []any{value}, false, nil
	}

	list := make([]any, rv.Len())
	var first reflect.Type
	for i := range list {
		elem := rv.Index(i)
		if isNil(elem) {
			return nil, true, invalid(id, ErrNullValue)
		}
		v := elem.Interface()
		t := reflect.TypeOf(v)
		if first == nil {
			first = t
		} else if t != first {
			return nil, true, invalid(id, fmt.Errorf("%w: %s and %s", ErrInhomogeneous, first, t))
		}
		list[i] = v
	}
	return list, true, nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return true
		}
		if v.Kind() == reflect.Interface {
			return isNil(v.Elem())
		}
	}
	return false
}

func mismatch(id string, want Type, got any) error {
	return invalid(id, fmt.Errorf("%w: %s property got %T", ErrTypeMismatch, want, got))
}

func stringsOf(t Type, wrap func([]string) Values) converter {
	return func(id string, raw []any) (Values, error) {
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, mismatch(id, t, v)
			}
			out = append(out, s)
		}
		return wrap(out), nil
	}
}

func convertIntegers(id string, raw []any) (Values, error) {
	out := make(IntegerValues, 0, len(raw))
	for _, v := range raw {
		n, err := toInt64(v)
		if err != nil {
			return nil, invalid(id, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case *big.Int:
		if n.IsInt64() {
			return n.Int64(), nil
		}
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, n)
	default:
		return 0, fmt.Errorf("%w: %s property got %T", ErrTypeMismatch, TypeInteger, v)
	}
}

func uintToInt64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return int64(n), nil
}

func convertBooleans(id string, raw []any) (Values, error) {
	out := make(BooleanValues, 0, len(raw))
	for _, v := range raw {
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch(id, TypeBoolean, v)
		}
		out = append(out, b)
	}
	return out, nil
}

func convertDateTimes(id string, raw []any) (Values, error) {
	out := make(DateTimeValues, 0, len(raw))
	for _, v := range raw {
		t, ok := v.(time.Time)
		if !ok {
			return nil, mismatch(id, TypeDateTime, v)
		}
		out = append(out, t)
	}
	return out, nil
}

func convertDecimals(id string, raw []any) (Values, error) {
	out := make(DecimalValues, 0, len(raw))
	for _, v := range raw {
		switch f := v.(type) {
		case float32:
			d, err := finite(id, float64(f))
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		case float64:
			d, err := finite(id, f)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		case *big.Float:
			out = append(out, new(big.Float).Copy(f))
		default:
			return nil, mismatch(id, TypeDecimal, v)
		}
	}
	return out, nil
}

// finite rejects NaN and infinities, which big.Float cannot hold.
func finite(id string, f float64) (*big.Float, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalid(id, fmt.Errorf("%w: %v", ErrOutOfRange, f))
	}
	return big.NewFloat(f), nil
}
