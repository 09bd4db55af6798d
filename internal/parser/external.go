package parser

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/cmmoran/accessorgen/pkg/generator"
)

var ErrEmptyPath = errors.New("empty import path")

// externalPkg is the cache entry for a single imported package.
type externalPkg struct {
	files     map[string]*ast.File          // filename → AST
	typToFile map[*ast.StructType]*ast.File // struct → file
	structs   map[string]*ast.StructType    // typeName → struct AST
}

// externalStruct returns the struct type named typeName in importPath,
// parsing the package directory on first use and caching the result. It is
// used to flatten embedded members declared in other modules, where only
// source is available.
func (p *Parser) externalStruct(importPath, typeName string) (*ast.File, *ast.StructType, error) {
	if importPath == "" {
		return nil, nil, ErrEmptyPath
	}

	ep, seen := p.extPkgs[importPath]
	if !seen {
		pkgDir, err := p.resolvePkgDir(importPath)
		if err != nil {
			return nil, nil, fmt.Errorf("unknown import %q: %w", importPath, err)
		}

		fset := token.NewFileSet()
		pkgs, err := goparser.ParseDir(fset, pkgDir, nil, goparser.ParseComments)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing %s: %w", pkgDir, err)
		}

		ep = &externalPkg{
			files:     make(map[string]*ast.File),
			typToFile: make(map[*ast.StructType]*ast.File),
			structs:   make(map[string]*ast.StructType),
		}
		for _, pkg := range pkgs {
			for fname, f := range pkg.Files {
				ep.files[fname] = f
			}
		}
		p.extPkgs[importPath] = ep
	}

	if st, ok := ep.structs[typeName]; ok {
		return ep.typToFile[st], st, nil
	}

	for _, file := range ep.files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != typeName {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, nil, fmt.Errorf("%s.%s is not a struct", importPath, typeName)
				}
				ep.structs[typeName] = st
				ep.typToFile[st] = file
				return file, st, nil
			}
		}
	}

	return nil, nil, fmt.Errorf("type %s not found in %s", typeName, importPath)
}

// resolvePkgDir maps an import path onto an on-disk directory by matching the
// longest module prefix known from go.mod against the module cache layout.
func (p *Parser) resolvePkgDir(importPath string) (string, error) {
	parts := strings.Split(importPath, "/")

	for i := len(parts); i > 0; i-- {
		candidate := strings.Join(parts[:i], "/")
		dir, ok := p.importMap[candidate]
		if !ok {
			continue
		}
		sub := strings.Join(parts[i:], "/")
		if sub == "" {
			return dir, nil
		}
		return filepath.Join(dir, filepath.FromSlash(sub)), nil
	}

	return "", fmt.Errorf("no module found for import %q", importPath)
}

// buildImportMap constructs map[modulePath]filesystemDir from the enclosing
// go.mod's require and replace directives.
func (p *Parser) buildImportMap() error {
	modDir, err := p.findGoModDir()
	if err != nil {
		return err
	}
	reqs, reps, err := parseRequires(modDir)
	if err != nil {
		return err
	}
	cache, err := p.moduleCacheDir()
	if err != nil {
		return err
	}

	m := make(map[string]string, len(reqs)+len(reps)+1)
	// the main module is the directory itself
	if data, err := os.ReadFile(filepath.Join(modDir, "go.mod")); err == nil {
		if mf, mfErr := modfile.Parse("go.mod", data, nil); mfErr == nil {
			m[mf.Module.Mod.Path] = modDir
		}
	}

	for _, v := range append(reqs, reps...) {
		if v.Version == "" {
			// probably a local replace; point at the module directory
			m[v.Path] = filepath.Join(modDir, filepath.FromSlash(v.Path))
		} else {
			// standard module cache layout: path@version
			m[v.Path] = filepath.Join(cache, fmt.Sprintf("%s@%s", v.Path, v.Version))
		}
	}

	p.importMap = m
	for k, v := range m {
		base := filepath.Base(k)
		p.Imports[k] = &generator.ImportMeta{
			Path:  k,
			Name:  base,
			Alias: base,
			Dir:   v,
			Mod:   true,
		}
	}

	return nil
}

// parseRequires parses all require and replace directives.
func parseRequires(modDir string) ([]module.Version, []module.Version, error) {
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return nil, nil, err
	}
	mf, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return nil, nil, err
	}
	reqs := make([]module.Version, 0, len(mf.Require))
	for _, r := range mf.Require {
		reqs = append(reqs, r.Mod)
	}
	reps := make([]module.Version, 0, len(mf.Replace))
	for _, r := range mf.Replace {
		reps = append(reps, module.Version{Path: r.New.Path, Version: r.New.Version})
	}
	return reqs, reps, nil
}

// findGoModDir walks up from InDir until it finds go.mod.
func (p *Parser) findGoModDir() (string, error) {
	from := p.Opts.InDir
	for {
		if _, err := os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("no go.mod found")
		}
		from = parent
	}
}

// moduleCacheDir returns $GOMODCACHE or $GOPATH/pkg/mod.
func (p *Parser) moduleCacheDir() (string, error) {
	if m := os.Getenv("GOMODCACHE"); m != "" {
		return m, nil
	}
	g := os.Getenv("GOPATH")
	if g == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		g = filepath.Join(home, "go")
	}
	return filepath.Join(g, "pkg", "mod"), nil
}
