package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rrevenantt/treebridge/bridge"
	"github.com/rrevenantt/treebridge/cst"
	verr "github.com/rrevenantt/treebridge/error"
	"github.com/rrevenantt/treebridge/grammar"
)

var parseFlags = struct {
	jobs   *int
	root   *string
	noTree *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <compiled grammar path> [source file path...]",
		Short:   "Parse text streams into concrete syntax trees",
		Example: `  cat src | treebridge parse grammar.bin`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.jobs = cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "number of source files parsed concurrently")
	parseFlags.root = cmd.Flags().String("root", "", "kind of the root element (default: the grammar name)")
	parseFlags.noTree = cmd.Flags().Bool("no-tree", false, "report diagnostics only, without printing trees")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			retErr = fmt.Errorf("an unexpected error occurred: %v", v)
			fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
			return
		}
		retErr = err
		fmt.Fprintf(os.Stderr, "%v:\n%v", retErr, string(debug.Stack()))
	}()

	gf, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot read the compiled grammar: %w", err)
	}
	cgram, err := grammar.ReadCompiledGrammar(gf)
	gf.Close()
	if err != nil {
		return err
	}

	root := cgram.Name
	if *parseFlags.root != "" {
		root = *parseFlags.root
	}

	adaptor, err := bridge.NewAdaptor(cgram)
	if err != nil {
		return err
	}

	sources := args[1:]
	if len(sources) == 0 {
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return report(os.Stdout, "stdin", "", string(text), adaptor, root)
	}

	// Each file gets its own builder and parser instances; nothing mutable
	// is shared between the pipelines.
	outputs := make([]bytes.Buffer, len(sources))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(*parseFlags.jobs, len(sources)))
	for i, path := range sources {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return reportCtx(gctx, &outputs[i], path, path, string(text), adaptor, root)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range outputs {
		if _, err := outputs[i].WriteTo(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func report(w io.Writer, name, path string, text string, adaptor *bridge.Adaptor, root string) error {
	return reportCtx(context.Background(), w, name, path, text, adaptor, root)
}

func reportCtx(ctx context.Context, w io.Writer, name, path string, text string, adaptor *bridge.Adaptor, root string) error {
	tree, diags, err := adaptor.BuildTree(ctx, text, root)
	if err != nil {
		return err
	}

	if !*parseFlags.noTree {
		cst.PrintTree(w, tree)
	}

	for _, diag := range diags {
		row, col := position(text, diag.Token.Start)
		e := &verr.SourceError{
			Cause:      errors.New(diag.Message),
			FilePath:   path,
			SourceName: name,
			Row:        row,
			Col:        col,
		}
		fmt.Fprintln(w, color.RedString("%v", e))
		if len(diag.ExpectedTerminals) > 0 {
			fmt.Fprintf(w, "    expected: %v\n", strings.Join(diag.ExpectedTerminals, ", "))
		}
	}

	return nil
}

// position converts a byte offset into 1-based row and column.
func position(text string, offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	row := 1 + strings.Count(text[:offset], "\n")
	col := offset - strings.LastIndex(text[:offset], "\n")
	return row, col
}
