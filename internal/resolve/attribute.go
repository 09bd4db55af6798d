package resolve

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"

	"github.com/cmmoran/accessorgen/internal/model"
)

// Resolved carries the outcome of resolving a flag annotation argument.
// Present is false when the annotation exists but gives no explicit argument
// (or an argument outside the supported sub-language); the caller supplies
// its own defaults in that case.
type Resolved[T FlagSet] struct {
	Value   T
	Present bool
}

// Flags locates the named annotation on decl and resolves its first argument
// to a value of the flag enumeration T.
//
// The annotation is expected to be there: callers filter declarations by
// annotation before resolving, so a missing one is an upstream bug and comes
// back as an error naming the declaration. An empty argument list means "use
// defaults" and yields an absent result. A single named-option argument that
// does not resolve is likewise absent. A combine chain is all or nothing:
// every leaf must resolve, and any failure aborts without a partial mask.
func Flags[T FlagSet](decl *model.Declaration, annotation string) (Resolved[T], error) {
	ann := decl.Annotation(annotation)
	if ann == nil {
		return Resolved[T]{}, fmt.Errorf("resolve: declaration %q has no %q annotation", decl.Name, annotation)
	}
	if len(ann.Args) == 0 {
		return Resolved[T]{}, nil
	}

	switch arg := ast.Unparen(ann.Args[0]).(type) {
	case *ast.SelectorExpr:
		ref, ok := asOptionRef(arg)
		if !ok {
			return Resolved[T]{}, nil
		}
		v, ok := Option[T](ref.Qualifier, ref.Name)
		if !ok {
			return Resolved[T]{}, nil
		}
		return Resolved[T]{Value: v, Present: true}, nil

	case *ast.BinaryExpr:
		if arg.Op != token.OR {
			return Resolved[T]{}, nil
		}
		refs, err := flattenChain(arg, nil)
		if err != nil {
			return Resolved[T]{}, fmt.Errorf("resolve: %q on declaration %q: %w", annotation, decl.Name, err)
		}
		var out T
		for _, ref := range refs {
			v, ok := Option[T](ref.Qualifier, ref.Name)
			if !ok {
				return Resolved[T]{}, fmt.Errorf("resolve: %q on declaration %q: %s.%s is not an option of %s",
					annotation, decl.Name, ref.Qualifier, ref.Name, reflect.TypeOf(out).Name())
			}
			out = Combine(out, v)
		}
		return Resolved[T]{Value: out, Present: true}, nil

	default:
		return Resolved[T]{}, nil
	}
}
