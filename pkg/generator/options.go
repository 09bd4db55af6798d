package generator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ImportMeta describes an import visible to scanned or generated code.
type ImportMeta struct {
	Path  string // fully-qualified import path
	Name  string // package base name
	Alias string // alias used by the scanned file
	Dir   string // on-disk directory, when resolved through the module graph
	Mod   bool   // came from go.mod rather than a source file
}

// TagFilter excludes a member when its struct tag matches Key and contains Value.
type TagFilter struct {
	Key   string
	Value string
}

// Options control scanning and generation.
//
// InDir             – directory to scan for annotated declarations
// OutDir            – output directory
// OutFile           – output filename
// FlattenEmbedded   – lift embedded struct fields into the parent (default true).
// IncludeEmbedded   – keep the embedded member itself instead of its fields.
// ExcludeDeprecated – skip declarations whose comment contains "deprecated".
// ExcludeTypes      – names of annotated types to skip (case-insensitive).
// ExcludeByTags     – filters that drop members by struct tag.
// Note: FlattenEmbedded and IncludeEmbedded are mutually exclusive; last one wins.
type Options struct {
	InDir             string      `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir            string      `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile           string      `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	FlattenEmbedded   bool        `json:"flatten_embedded,omitempty" yaml:"flatten_embedded,omitempty" toml:"flatten_embedded,omitempty" mapstructure:"flatten_embedded,omitempty"`
	IncludeEmbedded   bool        `json:"include_embedded,omitempty" yaml:"include_embedded,omitempty" toml:"include_embedded,omitempty" mapstructure:"include_embedded,omitempty"`
	ExcludeDeprecated bool        `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" toml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeTypes      []string    `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeByTags     []TagFilter `json:"exclude_by_tags,omitempty" yaml:"exclude_by_tags,omitempty" toml:"exclude_by_tags,omitempty" mapstructure:"exclude_by_tags,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:           ".",
		OutDir:          ".",
		OutFile:         "accessors_gen.go",
		FlattenEmbedded: true,
		IncludeEmbedded: false,
	}
}

func (o *Options) Normalize(excludeByTagsStrings ...string) {
	for _, s := range excludeByTagsStrings {
		key, value, ok := strings.Cut(s, ":")
		if !ok {
			panic(fmt.Sprintf("exclude-tags filter %q must be key:value", s))
		}
		o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{Key: key, Value: value})
	}
	if o.FlattenEmbedded == o.IncludeEmbedded {
		panic("FlattenEmbedded and IncludeEmbedded are mutually exclusive")
	}
	if strings.Contains(o.InDir, ".") {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = o.InDir
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.OutFile) == 0 {
		o.OutFile = "accessors_gen.go"
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option   { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option  { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option { return func(o *Options) { o.OutFile = f } }
func WithFlattenEmbedded() Option {
	return func(o *Options) { o.FlattenEmbedded, o.IncludeEmbedded = true, false }
}
func WithIncludeEmbedded() Option {
	return func(o *Options) { o.IncludeEmbedded, o.FlattenEmbedded = true, false }
}
func WithExcludeDeprecated() Option { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
func WithExcludeByTag(key, val string) Option {
	return func(o *Options) { o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{key, val}) }
}
