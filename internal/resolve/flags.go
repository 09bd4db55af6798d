package resolve

import (
	"fmt"
	"reflect"
	"sync"
)

// FlagSet constrains flag enumerations: named types whose underlying
// representation is an integer, combined via bitwise OR.
type FlagSet interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// combiner ORs two values of one concrete flag type through its underlying
// integer representation.
type combiner func(a, b reflect.Value) reflect.Value

// combiners caches one synthesized combiner per concrete flag type. Entries
// are write-once per key: concurrent generation passes may race and build
// a duplicate, but LoadOrStore guarantees every caller observes the same one
// and no lock is held across synthesis.
var combiners sync.Map // reflect.Type → combiner

// combinerFor returns the cached combiner for t, synthesizing it on first use.
func combinerFor(t reflect.Type) combiner {
	if c, ok := combiners.Load(t); ok {
		return c.(combiner)
	}
	c, _ := combiners.LoadOrStore(t, synthesize(t))
	return c.(combiner)
}

// synthesize builds the OR function for t. A non-integer kind is a
// programming error in the set of supported flag enumerations, not a data
// error, so it is fatal.
func synthesize(t reflect.Type) combiner {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) reflect.Value {
			v := reflect.New(t).Elem()
			v.SetInt(a.Int() | b.Int())
			return v
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(a, b reflect.Value) reflect.Value {
			v := reflect.New(t).Elem()
			v.SetUint(a.Uint() | b.Uint())
			return v
		}
	default:
		panic(fmt.Sprintf("resolve: %s is not an integer-backed flag enumeration", t))
	}
}

// Combine ORs two values of the same flag enumeration. The underlying
// combiner is built at most once per concrete type and reused afterwards.
func Combine[T FlagSet](a, b T) T {
	c := combinerFor(reflect.TypeOf(a))
	return c(reflect.ValueOf(a), reflect.ValueOf(b)).Interface().(T)
}
