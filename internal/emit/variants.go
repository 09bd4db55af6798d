package emit

import (
	"github.com/cmmoran/accessorgen/internal/resolve"
)

// Variants selects which accessor code gets generated for an annotated
// struct, as a bit-field.
type Variants uint8

const (
	VariantConstructor Variants = 1 << iota
	VariantGetters
	VariantSetters
	VariantStringer

	VariantAll = VariantConstructor | VariantGetters | VariantSetters | VariantStringer
)

// Annotation names recognized on struct declarations.
const (
	AnnotationGenerate = "generate"
	AnnotationMembers  = "members"
)

// Defaults applied when an annotation carries no explicit argument.
const (
	DefaultVariants = VariantConstructor | VariantGetters
	DefaultAccess   = resolve.AccessPublic | resolve.AccessPrivate
)

// Has all of the given variant bits set.
func (v Variants) Has(variant Variants) bool {
	return v&variant == variant
}

func init() {
	resolve.RegisterFlags(map[string]Variants{
		"Constructor": VariantConstructor,
		"Getters":     VariantGetters,
		"Setters":     VariantSetters,
		"Stringer":    VariantStringer,
		"All":         VariantAll,
	})
}
