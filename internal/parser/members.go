package parser

import (
	"fmt"
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"github.com/cmmoran/accessorgen/internal/model"
)

// maxEmbedDepth bounds embedded-struct flattening so mutually embedded types
// cannot recurse forever.
const maxEmbedDepth = 8

// buildMembers converts a struct type's fields into member Declarations,
// applying tag exclusion, deprecation exclusion, and embedded handling per
// Options.
func (p *Parser) buildMembers(pkgPath string, file *ast.File, st *ast.StructType, depth int) ([]*model.Declaration, error) {
	var out []*model.Declaration

	for _, fld := range st.Fields.List {
		comment := commentText(fld.Comment)
		docTxt := commentText(fld.Doc)

		if p.Opts.ExcludeDeprecated &&
			(strings.Contains(strings.ToLower(comment), "deprecated") ||
				strings.Contains(strings.ToLower(docTxt), "deprecated")) {
			continue
		}

		tag := fieldTag(fld.Tag)
		if p.tagExcluded(tag) {
			continue
		}

		// Embedded field
		if len(fld.Names) == 0 {
			members, err := p.embeddedMembers(pkgPath, file, fld, tag, comment, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, members...)
			continue
		}

		// Named fields; one field spec may carry multiple names: X, Y string
		for _, id := range fld.Names {
			out = append(out, &model.Declaration{
				Name:      id.Name,
				Kind:      model.KindField,
				Comment:   firstNonEmpty(docTxt, comment),
				Modifiers: declModifiers(id.Name, tag),
				TypeExpr:  fld.Type,
				Tag:       tag,
				PkgPath:   pkgPath,
				File:      file,
			})
		}
	}

	return out, nil
}

// embeddedMembers handles one embedded field: either the embedded member
// itself (IncludeEmbedded) or the flattened fields of the embedded struct
// (FlattenEmbedded), resolved locally or from the imported package's source.
func (p *Parser) embeddedMembers(pkgPath string, file *ast.File, fld *ast.Field, tag reflect.StructTag, comment string, depth int) ([]*model.Declaration, error) {
	name := embeddedFieldName(fld.Type)
	if name == "" {
		return nil, fmt.Errorf("cannot determine embedded field name")
	}

	if p.Opts.IncludeEmbedded {
		return []*model.Declaration{{
			Name:      name,
			Kind:      model.KindField,
			Comment:   comment,
			Modifiers: declModifiers(name, tag),
			TypeExpr:  fld.Type,
			Tag:       tag,
			Embedded:  true,
			PkgPath:   pkgPath,
			File:      file,
		}}, nil
	}

	if depth >= maxEmbedDepth {
		return nil, fmt.Errorf("embedded type %s nests too deeply", name)
	}

	// Local embedded struct: flatten its fields in place.
	if ls, ok := p.localStructs[name]; ok {
		return p.buildMembers(pkgPath, ls.file, ls.typ, depth+1)
	}

	// Imported embedded struct: parse the defining package from disk.
	if sel, ok := ast.Unparen(baseType(fld.Type)).(*ast.SelectorExpr); ok {
		if pkgIdent, ok := sel.X.(*ast.Ident); ok {
			meta, ok := p.Imports[pkgIdent.Name]
			if !ok {
				return nil, fmt.Errorf("embedded type %s.%s: unknown import %q", pkgIdent.Name, sel.Sel.Name, pkgIdent.Name)
			}
			extFile, extStruct, err := p.externalStruct(meta.Path, sel.Sel.Name)
			if err != nil {
				return nil, fmt.Errorf("embedded type %s.%s: %w", pkgIdent.Name, sel.Sel.Name, err)
			}
			return p.buildMembers(meta.Path, extFile, extStruct, depth+1)
		}
	}

	// Embedded non-struct (interface, alias to a builtin): drop it, there are
	// no members to lift.
	return nil, nil
}

// declModifiers derives the accessibility markers for a named member. An
// access:"..." struct tag overrides the export-based default; exported names
// are public, unexported private.
func declModifiers(name string, tag reflect.StructTag) []string {
	if v, ok := tag.Lookup("access"); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			switch part = strings.TrimSpace(part); part {
			case "public", "private", "protected", "internal":
				out = append(out, part)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	if ast.IsExported(name) {
		return []string{"public"}
	}
	return []string{"private"}
}

func (p *Parser) tagExcluded(tag reflect.StructTag) bool {
	if tag == "" || len(p.Opts.ExcludeByTags) == 0 {
		return false
	}
	for _, f := range p.Opts.ExcludeByTags {
		if v, ok := tag.Lookup(f.Key); ok {
			for _, part := range strings.Split(v, ";") {
				if part == f.Value {
					return true
				}
			}
		}
	}
	return false
}

// fieldTag unquotes a field's raw tag literal.
func fieldTag(lit *ast.BasicLit) reflect.StructTag {
	if lit == nil {
		return ""
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(unquoted)
}

// helpers
func embeddedFieldName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedFieldName(t.X)
	}
	return ""
}

// baseType strips pointer wrappers from a type expression.
func baseType(expr ast.Expr) ast.Expr {
	for {
		star, ok := expr.(*ast.StarExpr)
		if !ok {
			return expr
		}
		expr = star.X
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
