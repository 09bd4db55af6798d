package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/accessorgen/internal/model"
)

func member(name string, modifiers ...string) *model.Declaration {
	return &model.Declaration{
		Name:      name,
		Kind:      model.KindField,
		Modifiers: modifiers,
	}
}

func memberNames(members []*model.Declaration) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	members := []*model.Declaration{
		member("pub", "public"),
		member("priv", "private"),
		member("prot", "protected"),
		member("internalMember", "internal"),
	}

	tests := []struct {
		name   string
		access Access
		want   []string
	}{
		{
			name:   "public and private preserve input order",
			access: AccessPublic | AccessPrivate,
			want:   []string{"pub", "priv"},
		},
		{
			name:   "all bits return input unchanged",
			access: AccessPrivate | AccessProtected | AccessInternal | AccessPublic,
			want:   []string{"pub", "priv", "prot", "internalMember"},
		},
		{
			name:   "single bit",
			access: AccessProtected,
			want:   []string{"prot"},
		},
		{
			name:   "zero mask drops everything",
			access: 0,
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(members, tt.access)
			if diff := cmp.Diff(tt.want, memberNames(got)); diff != "" {
				t.Errorf("Filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	members := []*model.Declaration{
		member("a", "public"),
		member("b", "private"),
	}

	once := Filter(members, AccessPublic)
	twice := Filter(once, AccessPublic)
	require.Equal(t, once, twice)
}

func TestFilterUnmodifiedMembers(t *testing.T) {
	// A member with no markers at all never matches, even under the full mask.
	got := Filter([]*model.Declaration{member("bare")}, AccessAll)
	require.Empty(t, got)
}

func TestAccessResolvesAsFlagEnum(t *testing.T) {
	decl := annotated(t, "members", "Access.Public | Access.Internal")

	got, err := Flags[Access](decl, "members")
	require.NoError(t, err)
	require.True(t, got.Present)
	require.Equal(t, AccessPublic|AccessInternal, got.Value)
}
