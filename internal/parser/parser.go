package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/accessorgen/internal/model"
	"github.com/cmmoran/accessorgen/pkg/generator"
)

// Parser holds state/results of a scan run.
type Parser struct {
	Opts generator.Options

	Imports map[string]*generator.ImportMeta
	PkgName string
	PkgPath string

	// Decls are the annotated struct declarations found in InDir, with their
	// members already filtered and flattened per Options.
	Decls model.Declarations

	aliasCount map[string]int

	// localStructs indexes every struct type in the scanned packages, not
	// just annotated ones, so embedded locals can be flattened.
	localStructs map[string]*localStruct

	// extPkgs caches on-disk parses of imported packages.
	extPkgs   map[string]*externalPkg
	importMap map[string]string
}

// localStruct pairs a struct type with the file it was declared in.
type localStruct struct {
	typ  *ast.StructType
	file *ast.File
}

// New executes the parser with opts.
func New(opts ...generator.Option) (*Parser, error) {
	o := &generator.Options{
		FlattenEmbedded: true,
	}
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *generator.Options) (*Parser, error) {
	opts.Normalize()

	p := &Parser{
		Opts:         *opts,
		Imports:      make(map[string]*generator.ImportMeta),
		Decls:        make(model.Declarations, 0),
		aliasCount:   make(map[string]int),
		localStructs: make(map[string]*localStruct),
		extPkgs:      make(map[string]*externalPkg),
	}

	return p, nil
}

func (p *Parser) Parse() error {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.LoadImports | packages.LoadAllSyntax,
		Dir:  p.Opts.InDir,
		Fset: token.NewFileSet(),
	}, "./...")
	if err != nil {
		return err
	}
	if err = p.buildImportMap(); err != nil {
		return err
	}

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			p.collectImports(file)
			p.collectLocalStructs(file)
		}
	}
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			if err = p.collectDeclarations(pkg.PkgPath, pkg.Name, file); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Parser) collectImports(file *ast.File) {
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		base := filepath.Base(path)
		alias := base
		if imp.Name != nil && imp.Name.Name != "_" && imp.Name.Name != "." {
			alias = imp.Name.Name
		}
		if p.aliasExists(alias) {
			continue
		}
		// ensure uniqueness
		count := p.aliasCount[alias]
		if count > 0 {
			alias = fmt.Sprintf("%s%d", alias, count+1)
		}
		p.aliasCount[alias]++
		p.Imports[alias] = &generator.ImportMeta{
			Path:  path,
			Name:  base,
			Alias: alias,
		}
	}
}

func (p *Parser) collectLocalStructs(file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				p.localStructs[ts.Name.Name] = &localStruct{typ: st, file: file}
			}
		}
	}
}

// collectDeclarations walks a file's type declarations and keeps the structs
// carrying //accessorgen: directives, turning each into a model.Declaration
// with its members resolved.
func (p *Parser) collectDeclarations(pkgPath, pkgName string, file *ast.File) error {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		genComment := commentText(gen.Doc)

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			annotations, err := parseDirectives(gen.Doc)
			if err != nil {
				return fmt.Errorf("declaration %q: %w", ts.Name.Name, err)
			}
			if ts.Doc != nil {
				more, err := parseDirectives(ts.Doc)
				if err != nil {
					return fmt.Errorf("declaration %q: %w", ts.Name.Name, err)
				}
				annotations = append(annotations, more...)
			}
			if len(annotations) == 0 {
				continue
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return fmt.Errorf("declaration %q: accessorgen directives require a struct type", ts.Name.Name)
			}

			typeComment := genComment
			if ts.Doc != nil {
				docTxt := commentText(ts.Doc)
				if docTxt != "" {
					if typeComment == "" {
						typeComment = docTxt
					} else {
						typeComment += "\n" + docTxt
					}
				}
			}

			if p.typeExcluded(ts.Name.Name, typeComment) {
				continue
			}

			members, err := p.buildMembers(pkgPath, file, st, 0)
			if err != nil {
				return fmt.Errorf("declaration %q: %w", ts.Name.Name, err)
			}

			if p.PkgName == "" {
				p.PkgName = pkgName
				p.PkgPath = pkgPath
			}

			p.Decls = append(p.Decls, &model.Declaration{
				Name:        ts.Name.Name,
				Kind:        model.KindStruct,
				Comment:     typeComment,
				Annotations: annotations,
				Modifiers:   declModifiers(ts.Name.Name, ""),
				Members:     members,
				PkgPath:     pkgPath,
				File:        file,
			})
		}
	}

	return nil
}

func (p *Parser) typeExcluded(name, comment string) bool {
	if p.Opts.ExcludeDeprecated &&
		strings.Contains(strings.ToLower(comment), "deprecated") {
		return true
	}
	for _, ex := range p.Opts.ExcludeTypes {
		if strings.EqualFold(ex, name) {
			return true
		}
	}
	return false
}

func (p *Parser) aliasExists(a string) bool {
	for _, m := range p.Imports {
		if m.Alias == a && !m.Mod {
			return true
		}
	}
	return false
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range cg.List {
		if strings.HasPrefix(c.Text, "//"+directivePrefix) {
			continue
		}
		txt := strings.TrimSpace(strings.Trim(strings.TrimPrefix(strings.TrimPrefix(c.Text, "//"), "/*"), "*/"))
		b.WriteString(txt)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
