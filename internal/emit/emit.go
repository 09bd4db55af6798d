package emit

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/accessorgen/internal/model"
	"github.com/cmmoran/accessorgen/internal/resolve"
)

// File renders one generated source file containing the accessor code for
// every annotated declaration, in declaration-name order.
func File(pkgName string, decls model.Declarations) (*jen.File, error) {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by accessorgen. DO NOT EDIT.")

	sorted := make(model.Declarations, len(decls))
	copy(sorted, decls)
	sort.Sort(sorted)

	for _, decl := range sorted {
		if err := renderDecl(f, decl); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func renderDecl(f *jen.File, decl *model.Declaration) error {
	variants := DefaultVariants
	if decl.Annotation(AnnotationGenerate) != nil {
		r, err := resolve.Flags[Variants](decl, AnnotationGenerate)
		if err != nil {
			return err
		}
		if r.Present {
			variants = r.Value
		}
	}

	access := DefaultAccess
	if decl.Annotation(AnnotationMembers) != nil {
		r, err := resolve.Flags[resolve.Access](decl, AnnotationMembers)
		if err != nil {
			return err
		}
		if r.Present {
			access = r.Value
		}
	}

	members := resolve.Filter(decl.Members, access)
	imports := fileImports(decl.File)

	if variants.Has(VariantConstructor) {
		if err := renderConstructor(f, decl, members, imports); err != nil {
			return err
		}
	}
	if variants.Has(VariantGetters) {
		if err := renderGetters(f, decl, members, imports); err != nil {
			return err
		}
	}
	if variants.Has(VariantSetters) {
		if err := renderSetters(f, decl, members, imports); err != nil {
			return err
		}
	}
	if variants.Has(VariantStringer) {
		renderStringer(f, decl, members)
	}

	return nil
}

func renderConstructor(f *jen.File, decl *model.Declaration, members []*model.Declaration, imports map[string]string) error {
	params := make([]jen.Code, 0, len(members))
	values := jen.Dict{}
	for _, m := range members {
		typ, err := memberType(decl, m, imports)
		if err != nil {
			return err
		}
		params = append(params, jen.Id(paramName(m.Name)).Add(typ))
		values[jen.Id(m.Name)] = jen.Id(paramName(m.Name))
	}

	f.Commentf("New%s constructs a %s from its members.", decl.Name, decl.Name)
	f.Func().Id("New" + decl.Name).Params(params...).Op("*").Id(decl.Name).Block(
		jen.Return(jen.Op("&").Id(decl.Name).Values(values)),
	)
	return nil
}

func renderGetters(f *jen.File, decl *model.Declaration, members []*model.Declaration, imports map[string]string) error {
	for _, m := range members {
		typ, err := memberType(decl, m, imports)
		if err != nil {
			return err
		}
		f.Func().Params(receiver(decl)).Id("Get" + exportedName(m.Name)).Params().
			Add(typ).
			Block(jen.Return(jen.Id("x").Dot(m.Name)))
	}
	return nil
}

func renderSetters(f *jen.File, decl *model.Declaration, members []*model.Declaration, imports map[string]string) error {
	for _, m := range members {
		typ, err := memberType(decl, m, imports)
		if err != nil {
			return err
		}
		f.Func().Params(receiver(decl)).Id("Set" + exportedName(m.Name)).
			Params(jen.Id("v").Add(typ)).
			Block(jen.Id("x").Dot(m.Name).Op("=").Id("v"))

		// Slice members additionally get an appender named after the
		// singular form of the member.
		if isSlice(m.TypeExpr) {
			elem, err := typeExpr(m.TypeExpr.(*ast.ArrayType).Elt, imports)
			if err != nil {
				return fmt.Errorf("emit: member %s.%s: %w", decl.Name, m.Name, err)
			}
			f.Func().Params(receiver(decl)).Id("Add" + inflection.Singular(exportedName(m.Name))).
				Params(jen.Id("v").Add(elem)).
				Block(jen.Id("x").Dot(m.Name).Op("=").Append(jen.Id("x").Dot(m.Name), jen.Id("v")))
		}
	}
	return nil
}

// memberType renders a member's type, naming the member on failure.
func memberType(decl, m *model.Declaration, imports map[string]string) (*jen.Statement, error) {
	typ, err := typeExpr(m.TypeExpr, imports)
	if err != nil {
		return nil, fmt.Errorf("emit: member %s.%s: %w", decl.Name, m.Name, err)
	}
	return typ, nil
}

func renderStringer(f *jen.File, decl *model.Declaration, members []*model.Declaration) {
	parts := make([]string, 0, len(members))
	args := make([]jen.Code, 0, len(members)+1)
	for _, m := range members {
		parts = append(parts, m.Name+"=%v")
		args = append(args, jen.Id("x").Dot(m.Name))
	}
	format := fmt.Sprintf("%s(%s)", decl.Name, strings.Join(parts, ", "))
	args = append([]jen.Code{jen.Lit(format)}, args...)

	f.Func().Params(receiver(decl)).Id("String").Params().String().Block(
		jen.Return(jen.Qual("fmt", "Sprintf").Call(args...)),
	)
}

func receiver(decl *model.Declaration) jen.Code {
	return jen.Id("x").Op("*").Id(decl.Name)
}

// typeExpr renders a field's type expression as jen code, qualifying
// imported types through the declaring file's import table. Shapes outside
// the supported set (fixed-size arrays, channels, funcs) are rejected so a
// wrong accessor signature never compiles silently.
func typeExpr(expr ast.Expr, imports map[string]string) (*jen.Statement, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name), nil
	case *ast.SelectorExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			if path, ok := imports[id.Name]; ok {
				return jen.Qual(path, t.Sel.Name), nil
			}
			return jen.Id(id.Name).Dot(t.Sel.Name), nil
		}
	case *ast.StarExpr:
		elem, err := typeExpr(t.X, imports)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(elem), nil
	case *ast.ArrayType:
		if t.Len == nil {
			elem, err := typeExpr(t.Elt, imports)
			if err != nil {
				return nil, err
			}
			return jen.Index().Add(elem), nil
		}
	case *ast.MapType:
		key, err := typeExpr(t.Key, imports)
		if err != nil {
			return nil, err
		}
		val, err := typeExpr(t.Value, imports)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(val), nil
	case *ast.ParenExpr:
		return typeExpr(t.X, imports)
	}
	return nil, fmt.Errorf("unsupported member type %T", expr)
}

// fileImports maps each import alias (or base name) of a file to its path.
func fileImports(f *ast.File) map[string]string {
	out := map[string]string{}
	if f == nil {
		return out
	}
	for _, imp := range f.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		alias := path[strings.LastIndex(path, "/")+1:]
		if imp.Name != nil && imp.Name.Name != "_" && imp.Name.Name != "." {
			alias = imp.Name.Name
		}
		out[alias] = path
	}
	return out
}

func isSlice(expr ast.Expr) bool {
	at, ok := expr.(*ast.ArrayType)
	return ok && at.Len == nil
}

func exportedName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// paramName derives a constructor parameter from a member name, dodging
// keywords like "type".
func paramName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	out := string(r)
	if token.IsKeyword(out) {
		out += "Arg"
	}
	return out
}
