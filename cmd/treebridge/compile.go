package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rrevenantt/treebridge/grammar"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <grammar file path>",
		Short:   "Compile a grammar into a portable artifact",
		Example: `  treebridge compile grammar.toml -o grammar.bin`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var spec *grammar.Spec
	var err error
	if len(args) > 0 {
		spec, err = grammar.ParseSpecFile(args[0])
	} else {
		spec, err = grammar.ParseSpec(os.Stdin)
	}
	if err != nil {
		return err
	}

	cgram, err := grammar.Compile(spec)
	if err != nil {
		return err
	}

	w := os.Stdout
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("cannot create the output file %s: %w", *compileFlags.output, err)
		}
		defer f.Close()
		w = f
	}

	return grammar.WriteCompiledGrammar(w, cgram)
}
