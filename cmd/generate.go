package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmmoran/accessorgen/pkg/action/generate"
	"github.com/cmmoran/accessorgen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var (
		options             = &generator.Options{}
		excludeByTagStrings = make([]string, 0)
	)

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate accessors",
		Long:  "Generate accessor code for annotated struct declarations",
		Run: func(c *cobra.Command, args []string) {
			if err := generate.Run(options); err != nil {
				slog.With("error", err).Error("generation failed")
				os.Exit(1)
			}
		},
	}
	generateCmd.PersistentFlags().StringVarP(&options.InDir, "input-directory", "i", ".", "directory to scan")
	generateCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "", "directory to write generated code, defaults to the input directory")
	generateCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "accessors_gen.go", "output file where accessors will be written")
	generateCmd.PersistentFlags().BoolVarP(&options.FlattenEmbedded, "flatten-embedded", "F", true, "flatten embedded types' fields into parent")
	generateCmd.PersistentFlags().BoolVarP(&options.IncludeEmbedded, "include-embedded", "E", false, "treat embedded types themselves as members")
	generateCmd.PersistentFlags().BoolVarP(&options.ExcludeDeprecated, "exclude-deprecated", "d", false, "exclude deprecated types and members")
	generateCmd.PersistentFlags().StringSliceVarP(&options.ExcludeTypes, "exclude-types", "t", []string{}, "exclude named types from generation")
	generateCmd.PersistentFlags().StringSliceVarP(&excludeByTagStrings, "exclude-tags", "T", []string{}, "exclude members with matching tags, ex: gorm:\",embedded\"")
	initOpts := func() {
		options.Normalize(excludeByTagStrings...)
	}
	cobra.OnInitialize(initOpts)

	return generateCmd
}
