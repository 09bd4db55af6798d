package generate

import (
	"fmt"
	"os"
	"path"

	"github.com/cmmoran/accessorgen/internal/emit"
	"github.com/cmmoran/accessorgen/internal/parser"
	"github.com/cmmoran/accessorgen/pkg/generator"
	"github.com/cmmoran/accessorgen/pkg/manifest"
)

const manifestFile = "accessorgen.yaml"

// Run scans Options.InDir for annotated declarations, renders their accessor
// code into OutDir/OutFile, and records the output in the manifest.
func Run(o *generator.Options) error {
	p, err := parser.NewWithOpts(o)
	if err != nil {
		return err
	}
	if err = p.Parse(); err != nil {
		return err
	}
	if len(p.Decls) == 0 {
		return fmt.Errorf("no annotated declarations found in %s", p.Opts.InDir)
	}

	f, err := emit.File(p.PkgName, p.Decls)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(p.Opts.OutDir, 0o755); err != nil {
		return err
	}
	outFile := path.Clean(p.Opts.OutDir + "/" + p.Opts.OutFile)
	ff, err := os.OpenFile(outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err = f.Render(ff); err != nil {
		_ = ff.Close()
		return err
	}
	if err = ff.Close(); err != nil {
		return err
	}

	names := make([]string, 0, len(p.Decls))
	for _, d := range p.Decls {
		names = append(names, d.Name)
	}

	manifestPath := path.Clean(p.Opts.OutDir + "/" + manifestFile)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	m.AddOutput(manifest.Output{
		Package: p.PkgName,
		File:    p.Opts.OutFile,
		Types:   names,
	})
	return m.Save(manifestPath)
}
