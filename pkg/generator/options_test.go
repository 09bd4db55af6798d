package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeExcludeByTags(t *testing.T) {
	o := &Options{FlattenEmbedded: true}
	o.Normalize("dto:-", "gorm:embedded")

	require.Equal(t, []TagFilter{
		{Key: "dto", Value: "-"},
		{Key: "gorm", Value: "embedded"},
	}, o.ExcludeByTags)
}

func TestNormalizeExcludeByTagsMalformed(t *testing.T) {
	o := &Options{FlattenEmbedded: true}
	require.PanicsWithValue(t, `exclude-tags filter "dto" must be key:value`, func() {
		o.Normalize("dto")
	})
}

func TestNormalizeMutuallyExclusiveEmbedding(t *testing.T) {
	require.Panics(t, func() {
		(&Options{}).Normalize()
	})
	require.Panics(t, func() {
		(&Options{FlattenEmbedded: true, IncludeEmbedded: true}).Normalize()
	})
}
