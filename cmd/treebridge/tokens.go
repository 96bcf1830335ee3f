package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rrevenantt/treebridge/cst"
	"github.com/rrevenantt/treebridge/grammar"
	"github.com/rrevenantt/treebridge/lexer"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tokens <compiled grammar path> [source file path]",
		Short:   "Print the raw token slots of a text stream",
		Example: `  cat src | treebridge tokens grammar.bin`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runTokens,
	}
	rootCmd.AddCommand(cmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	gf, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot read the compiled grammar: %w", err)
	}
	cgram, err := grammar.ReadCompiledGrammar(gf)
	gf.Close()
	if err != nil {
		return err
	}

	var text []byte
	if len(args) > 1 {
		text, err = os.ReadFile(args[1])
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	slots, err := lexer.Scan(cgram.Lexical.Spec, string(text))
	if err != nil {
		return err
	}

	kinds := cgram.KindSet()
	for i, slot := range slots {
		end := len(text)
		if i+1 < len(slots) {
			end = slots[i+1].Start
		}
		printSlot(os.Stdout, i, slot, end, string(text[slot.Start:end]), kinds)
	}
	return nil
}

func printSlot(w io.Writer, i int, slot cst.RawSlot, end int, lexeme string, kinds *cst.KindSet) {
	name := kinds.Name(slot.Kind)
	if name == "" {
		name = "<invalid>"
	}
	mark := " "
	if kinds.Trivia(slot.Kind) {
		mark = "*"
	}
	fmt.Fprintf(w, "%4v %s %5v..%-5v %-16v %#v\n", i, mark, slot.Start, end, name, lexeme)
}
