package resolve

import (
	"go/ast"
	"go/parser"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/accessorgen/internal/model"
)

// annotated builds a declaration carrying one annotation whose arguments are
// parsed from real Go expression source, so argument shapes go through the
// same AST forms the directive scanner produces.
func annotated(t *testing.T, name string, args ...string) *model.Declaration {
	t.Helper()
	ann := &model.Annotation{Name: name}
	for _, src := range args {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err)
		ann.Args = append(ann.Args, expr)
	}
	return &model.Declaration{
		Name:        "Widget",
		Kind:        model.KindStruct,
		Annotations: []*model.Annotation{ann},
	}
}

func TestFlagsSingleLeaf(t *testing.T) {
	decl := annotated(t, "generate", "Styles.Bold")

	got, err := Flags[Styles](decl, "generate")
	require.NoError(t, err)
	require.True(t, got.Present)
	require.Equal(t, StyleBold, got.Value)
}

func TestFlagsCombined(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want Styles
	}{
		{name: "flat chain", arg: "Styles.Bold | Styles.Italic", want: StyleBold | StyleItalic},
		{name: "three options", arg: "Styles.Bold | Styles.Italic | Styles.Underline", want: StyleBold | StyleItalic | StyleUnderline},
		{name: "parenthesized right nesting", arg: "Styles.Bold | (Styles.Italic | Styles.Underline)", want: StyleBold | StyleItalic | StyleUnderline},
		{name: "mixed nesting", arg: "(Styles.Bold | Styles.Italic) | Styles.Underline", want: StyleBold | StyleItalic | StyleUnderline},
		{name: "parenthesized leaf", arg: "(Styles.Bold) | Styles.Italic", want: StyleBold | StyleItalic},
		{name: "parenthesized leaves both sides", arg: "(Styles.Bold) | ((Styles.Italic))", want: StyleBold | StyleItalic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flags[Styles](annotated(t, "generate", tt.arg), "generate")
			require.NoError(t, err)
			require.True(t, got.Present)
			require.Equal(t, tt.want, got.Value)
		})
	}
}

func TestFlagsAbsent(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments"},
		{name: "single leaf with wrong qualifier", args: []string{"Other.Bold"}},
		{name: "single leaf with unknown option", args: []string{"Styles.Blink"}},
		{name: "unsupported shape literal", args: []string{"42"}},
		{name: "unsupported shape call", args: []string{"pick()"}},
		{name: "binary but not a combination", args: []string{"Styles.Bold & Styles.Italic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flags[Styles](annotated(t, "generate", tt.args...), "generate")
			require.NoError(t, err)
			require.False(t, got.Present)
			require.Zero(t, got.Value)
		})
	}
}

func TestFlagsMissingAnnotation(t *testing.T) {
	decl := &model.Declaration{Name: "Widget", Kind: model.KindStruct}

	_, err := Flags[Styles](decl, "generate")
	require.Error(t, err)
	require.ErrorContains(t, err, "Widget")
	require.ErrorContains(t, err, "generate")
}

func TestFlagsCombinedFailFast(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{name: "unknown option in chain", arg: "Styles.Bold | Styles.Blink"},
		{name: "wrong qualifier in chain", arg: "Styles.Bold | Other.Italic"},
		{name: "call operand in chain", arg: "Styles.Bold | pick()"},
		{name: "literal operand in chain", arg: "Styles.Bold | 4"},
		{name: "nested non-or operator", arg: "Styles.Bold | (Styles.Italic & Styles.Underline)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flags[Styles](annotated(t, "generate", tt.arg), "generate")
			require.Error(t, err)
			require.False(t, got.Present, "no partial mask on failure")
		})
	}
}

func TestFlattenChainLeafCount(t *testing.T) {
	// Every nesting shape of the same four leaves must decompose to exactly
	// four references and fold to the same mask.
	shapes := []string{
		"Styles.Bold | Styles.Italic | Styles.Underline | Styles.Bold",
		"Styles.Bold | (Styles.Italic | (Styles.Underline | Styles.Bold))",
		"(Styles.Bold | Styles.Italic) | (Styles.Underline | Styles.Bold)",
		"((Styles.Bold | Styles.Italic) | Styles.Underline) | Styles.Bold",
		"(Styles.Bold) | (Styles.Italic) | (Styles.Underline) | (Styles.Bold)",
	}
	for _, src := range shapes {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err)

		refs, err := flattenChain(expr.(*ast.BinaryExpr), nil)
		require.NoError(t, err)
		require.Len(t, refs, 4, "shape %q", src)

		var mask Styles
		for _, ref := range refs {
			v, ok := Option[Styles](ref.Qualifier, ref.Name)
			require.True(t, ok)
			mask = Combine(mask, v)
		}
		require.Equal(t, StyleBold|StyleItalic|StyleUnderline, mask, "shape %q", src)
	}
}
