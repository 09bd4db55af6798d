package resolve

import (
	"fmt"
	"reflect"
	"sync"
)

// enumInfo is the registered option table for one flag enumeration.
type enumInfo struct {
	name   string // the enumeration's simple type name, e.g. "Variants"
	values map[string]reflect.Value
}

var enums sync.Map // reflect.Type → *enumInfo

// RegisterFlags registers the named options of the flag enumeration T so that
// annotation arguments of the form T.Option can be resolved. The enumeration
// is addressed in annotations by its simple type name. Registration eagerly
// synthesizes T's combiner, so an unsuitable type fails here rather than at
// first resolution.
func RegisterFlags[T FlagSet](values map[string]T) {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Name() == "" {
		panic(fmt.Sprintf("resolve: flag enumeration %s must be a named type", t))
	}
	_ = combinerFor(t)

	info := &enumInfo{
		name:   t.Name(),
		values: make(map[string]reflect.Value, len(values)),
	}
	for name, v := range values {
		info.values[name] = reflect.ValueOf(v)
	}
	enums.LoadOrStore(t, info)
}

// Option resolves one qualified option reference against the registered
// enumeration T. It succeeds only when the qualifier equals T's simple type
// name and the name is a registered option. The qualifier match is purely
// textual; no semantic model is available at this stage, so two enumerations
// sharing a simple name cannot be told apart.
func Option[T FlagSet](qualifier, name string) (T, bool) {
	var zero T
	e, ok := enums.Load(reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	info := e.(*enumInfo)
	if qualifier != info.name {
		return zero, false
	}
	v, ok := info.values[name]
	if !ok {
		return zero, false
	}
	return v.Interface().(T), true
}
