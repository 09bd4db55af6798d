package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"strings"

	"github.com/cmmoran/accessorgen/internal/model"
)

// directivePrefix marks a comment line as an accessorgen annotation:
//
//	//accessorgen:generate(Variants.Constructor | Variants.Getters)
//	//accessorgen:members(Access.Public)
//	//accessorgen:generate
//
// The text after the prefix is parsed as a Go expression; a call yields an
// annotation with arguments, a bare identifier one without.
const directivePrefix = "accessorgen:"

// parseDirectives extracts annotations from a doc comment group. Lines
// without the prefix are ordinary documentation and skipped.
func parseDirectives(cg *ast.CommentGroup) ([]*model.Annotation, error) {
	if cg == nil {
		return nil, nil
	}

	var out []*model.Annotation
	for _, c := range cg.List {
		body, ok := strings.CutPrefix(c.Text, "//"+directivePrefix)
		if !ok {
			continue
		}
		body = strings.TrimSpace(body)
		if body == "" {
			return nil, fmt.Errorf("empty %s directive", directivePrefix)
		}

		ann, err := parseDirective(body)
		if err != nil {
			return nil, err
		}
		out = append(out, ann)
	}

	return out, nil
}

func parseDirective(body string) (*model.Annotation, error) {
	expr, err := goparser.ParseExpr(body)
	if err != nil {
		return nil, fmt.Errorf("malformed directive %q: %w", body, err)
	}

	switch e := expr.(type) {
	case *ast.CallExpr:
		id, ok := e.Fun.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("malformed directive %q: annotation name must be an identifier", body)
		}
		return &model.Annotation{Name: id.Name, Args: e.Args}, nil
	case *ast.Ident:
		return &model.Annotation{Name: e.Name}, nil
	default:
		return nil, fmt.Errorf("malformed directive %q: expected name or name(args)", body)
	}
}
