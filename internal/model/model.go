package model

import (
	"go/ast"
	"reflect"
)

type DeclKind int

const (
	KindInvalid DeclKind = iota
	KindStruct           // annotated struct type declaration
	KindField            // member of a struct declaration
)

// Annotation is one //accessorgen: directive attached to a declaration:
// a name plus the ordered argument expressions parsed from the directive text.
// Arguments are raw AST expressions; classification (named option vs. combine
// chain vs. anything else) happens at resolution time.
type Annotation struct {
	Name string
	Args []ast.Expr
}

// Declaration is a read-only view of one named program element sourced from
// the parse tree: either an annotated struct or one of its members. It is
// never mutated after the parser hands it out.
type Declaration struct {
	Name    string
	Kind    DeclKind
	Comment string

	Annotations []*Annotation
	Modifiers   []string // accessibility markers: "public", "private", "protected", "internal"

	Members []*Declaration // populated for KindStruct

	TypeExpr ast.Expr          // populated for KindField
	Tag      reflect.StructTag // raw struct tag, for KindField
	Embedded bool

	PkgPath string
	File    *ast.File // to resolve imports when rendering field types
}

// Annotation returns the first annotation with the given name, or nil.
func (d *Declaration) Annotation(name string) *Annotation {
	for _, a := range d.Annotations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// HasModifier reports whether the declaration carries the named marker.
func (d *Declaration) HasModifier(name string) bool {
	for _, m := range d.Modifiers {
		if m == name {
			return true
		}
	}
	return false
}

type Declarations []*Declaration

func (x Declarations) Find(name string) *Declaration {
	for _, d := range x {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func (x Declarations) Len() int {
	return len(x)
}

func (x Declarations) Less(i, j int) bool {
	return x[i].Name < x[j].Name
}

func (x Declarations) Swap(i, j int) {
	x[i], x[j] = x[j], x[i]
}
