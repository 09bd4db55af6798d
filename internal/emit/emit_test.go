package emit

import (
	"bytes"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/accessorgen/internal/model"
)

func parseFixture(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := goparser.ParseFile(token.NewFileSet(), "fixtures.go", src, goparser.ParseComments)
	require.NoError(t, err)
	return file
}

func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := goparser.ParseExpr(src)
	require.NoError(t, err)
	return expr
}

func fixtureDecl(t *testing.T, annotations ...*model.Annotation) *model.Declaration {
	t.Helper()
	return &model.Declaration{
		Name:        "User",
		Kind:        model.KindStruct,
		Annotations: annotations,
		Modifiers:   []string{"public"},
		Members: []*model.Declaration{
			{Name: "Name", Kind: model.KindField, Modifiers: []string{"public"}, TypeExpr: exprOf(t, "string")},
			{Name: "age", Kind: model.KindField, Modifiers: []string{"private"}, TypeExpr: exprOf(t, "int")},
			{Name: "Tags", Kind: model.KindField, Modifiers: []string{"public"}, TypeExpr: exprOf(t, "[]string")},
			{Name: "token", Kind: model.KindField, Modifiers: []string{"internal"}, TypeExpr: exprOf(t, "string")},
		},
	}
}

func render(t *testing.T, decl *model.Declaration) string {
	t.Helper()
	f, err := File("fixtures", model.Declarations{decl})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	return buf.String()
}

func TestFileDefaultVariants(t *testing.T) {
	// Bare generate directive: Constructor|Getters over Public|Private.
	out := render(t, fixtureDecl(t, &model.Annotation{Name: AnnotationGenerate}))

	require.Contains(t, out, "func NewUser(name string, age int, tags []string) *User")
	require.Contains(t, out, "func (x *User) GetName() string")
	require.Contains(t, out, "func (x *User) GetAge() int")
	require.NotContains(t, out, "GetToken", "internal member excluded by default access")
	require.NotContains(t, out, "SetName", "setters are not in the default variants")
	require.NotContains(t, out, "func (x *User) String()")
}

func TestFileExplicitVariants(t *testing.T) {
	decl := fixtureDecl(t,
		&model.Annotation{Name: AnnotationGenerate, Args: []ast.Expr{exprOf(t, "Variants.Setters | Variants.Stringer")}},
		&model.Annotation{Name: AnnotationMembers, Args: []ast.Expr{exprOf(t, "Access.Public")}},
	)
	out := render(t, decl)

	require.NotContains(t, out, "func NewUser")
	require.NotContains(t, out, "GetName")
	require.Contains(t, out, "func (x *User) SetName(v string)")
	require.Contains(t, out, "func (x *User) SetTags(v []string)")
	require.Contains(t, out, "func (x *User) AddTag(v string)")
	require.Contains(t, out, "func (x *User) String() string")
	require.NotContains(t, out, "SetAge", "private member excluded by Access.Public")
	require.Contains(t, out, `"User(Name=%v, Tags=%v)"`)
}

func TestFileMembersAccessMask(t *testing.T) {
	decl := fixtureDecl(t,
		&model.Annotation{Name: AnnotationGenerate, Args: []ast.Expr{exprOf(t, "Variants.Getters")}},
		&model.Annotation{Name: AnnotationMembers, Args: []ast.Expr{exprOf(t, "Access.Internal")}},
	)
	out := render(t, decl)

	require.Contains(t, out, "func (x *User) GetToken() string")
	require.NotContains(t, out, "GetName")
	require.NotContains(t, out, "GetAge")
}

func TestFileUnknownOptionFails(t *testing.T) {
	decl := fixtureDecl(t,
		&model.Annotation{Name: AnnotationGenerate, Args: []ast.Expr{exprOf(t, "Variants.Getters | Variants.Bogus")}},
	)
	_, err := File("fixtures", model.Declarations{decl})
	require.Error(t, err)
	require.ErrorContains(t, err, "User")
}

func TestFileQualifiedMemberTypes(t *testing.T) {
	src := `package fixtures

import "time"

type Event struct {
	At time.Time
}
`
	file := parseFixture(t, src)

	decl := &model.Declaration{
		Name:        "Event",
		Kind:        model.KindStruct,
		Annotations: []*model.Annotation{{Name: AnnotationGenerate}},
		Members: []*model.Declaration{
			{Name: "At", Kind: model.KindField, Modifiers: []string{"public"}, TypeExpr: exprOf(t, "time.Time"), File: file},
		},
		File: file,
	}
	out := render(t, decl)
	require.Contains(t, out, "func NewEvent(at time.Time) *Event")
	require.Contains(t, out, `"time"`)
}

func TestFileUnsupportedMemberType(t *testing.T) {
	tests := []struct {
		name string
		typ  string
	}{
		{name: "channel", typ: "chan int"},
		{name: "func", typ: "func() error"},
		{name: "fixed-size array", typ: "[4]byte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := &model.Declaration{
				Name:        "Odd",
				Kind:        model.KindStruct,
				Annotations: []*model.Annotation{{Name: AnnotationGenerate}},
				Members: []*model.Declaration{
					{Name: "Port", Kind: model.KindField, Modifiers: []string{"public"}, TypeExpr: exprOf(t, tt.typ)},
				},
			}
			_, err := File("fixtures", model.Declarations{decl})
			require.Error(t, err)
			require.ErrorContains(t, err, "Odd.Port")
			require.ErrorContains(t, err, "unsupported member type")
		})
	}
}

func TestFileKeywordParamName(t *testing.T) {
	decl := &model.Declaration{
		Name:        "Shape",
		Kind:        model.KindStruct,
		Annotations: []*model.Annotation{{Name: AnnotationGenerate}},
		Members: []*model.Declaration{
			{Name: "Type", Kind: model.KindField, Modifiers: []string{"public"}, TypeExpr: exprOf(t, "string")},
		},
	}
	out := render(t, decl)
	require.Contains(t, out, "func NewShape(typeArg string) *Shape")
}
