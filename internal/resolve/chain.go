package resolve

import (
	"fmt"
	"go/ast"
	"go/token"
)

// optionRef is one leaf of an annotation argument: a qualified reference to a
// single named option, e.g. Variants.Getters.
type optionRef struct {
	Qualifier string
	Name      string
}

// asOptionRef extracts the qualifier and simple name from a leaf expression.
// A leaf is a selector whose base is a bare identifier; anything else
// (calls, literals, deeper selectors) is not part of the supported
// sub-language.
func asOptionRef(expr ast.Expr) (optionRef, bool) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return optionRef{}, false
	}
	id, ok := sel.X.(*ast.Ident)
	if !ok {
		return optionRef{}, false
	}
	return optionRef{Qualifier: id.Name, Name: sel.Sel.Name}, true
}

// flattenChain decomposes a binary OR expression into its leaf option
// references, right operand first, recursing into nested combines on either
// side. Decomposition never loses or duplicates a leaf regardless of how the
// chain associates; order carries no meaning downstream since the fold is
// commutative.
//
// An operand that is neither a leaf nor a further OR combine makes the whole
// chain malformed: a silently dropped operand would resolve to a wrong,
// smaller bitmask, so it is rejected outright.
func flattenChain(bin *ast.BinaryExpr, out []optionRef) ([]optionRef, error) {
	var err error
	for _, operand := range []ast.Expr{bin.Y, bin.X} {
		switch op := ast.Unparen(operand).(type) {
		case *ast.BinaryExpr:
			if op.Op != token.OR {
				return nil, fmt.Errorf("unsupported operator %q in flag combination", op.Op)
			}
			if out, err = flattenChain(op, out); err != nil {
				return nil, err
			}
		default:
			ref, ok := asOptionRef(op)
			if !ok {
				return nil, fmt.Errorf("unsupported operand in flag combination: %T", op)
			}
			out = append(out, ref)
		}
	}
	return out, nil
}
