// sheetdump reads local workbook the same way resolve command does and
// writes per worksheet dumps: raw grid as YAML and result of layout
// decomposition together with merge warnings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"gsdoc/cmd/debug/internal/dumputil"
	"gsdoc/grid"
	"gsdoc/source"
	"gsdoc/utils/debug"
)

func main() {
	all := flag.Bool("all", false, "enable all dump flags (-grid, -blocks)")
	dumpGrid := flag.Bool("grid", false, "dump worksheet grids into <file>-<sheet>-grid.yaml")
	dumpBlocks := flag.Bool("blocks", false, "dump layout decomposition into <file>-<sheet>-blocks.txt")
	only := flag.String("sheet", "", "dump only worksheet with this name")
	strict := flag.Bool("strict", false, "treat merge consistency problems as errors")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sheetdump [-all] [-grid] [-blocks] [-sheet name] [-strict] [-overwrite] <file.xlsx> [outdir]\n\n")
		fmt.Fprintf(os.Stderr, "Reads workbook and dumps what section resolver sees for each worksheet.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *all {
		*dumpGrid = true
		*dumpBlocks = true
	}
	if !*dumpGrid && !*dumpBlocks {
		flag.Usage()
		os.Exit(2)
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	inPath := flag.Arg(0)
	outDir := ""
	if flag.NArg() == 2 {
		outDir = flag.Arg(1)
	}

	opts := grid.DefaultOptions()
	opts.StrictMerges = *strict

	if err := run(context.Background(), inPath, outDir, *only, opts, *dumpGrid, *dumpBlocks, *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inPath, outDir, only string, opts grid.Options, dumpGrid, dumpBlocks, overwrite bool) error {
	wb := source.NewWorkbook(".", "", zap.NewNop())
	defer wb.Close()

	// TOC is not interesting here, resolving only locates and opens workbook
	_, id, err := wb.ResolveSpreadsheet(ctx, inPath)
	if err != nil {
		return err
	}
	names, err := wb.Worksheets(ctx, id)
	if err != nil {
		return err
	}

	dumped := 0
	for _, name := range names {
		if only != "" && name != only {
			continue
		}
		sheet, err := wb.FetchWorksheetGrid(ctx, id, name)
		if err != nil {
			return err
		}

		if dumpGrid {
			data, err := yaml.Marshal(sheet)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", name, err)
			}
			if err := dumputil.WriteOutput(dumputil.OutputPath(inPath, outDir, ".yaml", name, "grid"), data, overwrite); err != nil {
				return err
			}
		}
		if dumpBlocks {
			if err := dumputil.WriteOutput(dumputil.OutputPath(inPath, outDir, ".txt", name, "blocks"), []byte(decompose(sheet, opts)), overwrite); err != nil {
				return err
			}
		}
		dumped++
	}
	if dumped == 0 {
		return fmt.Errorf("no worksheets to dump (have %s)", strings.Join(names, ", "))
	}
	return nil
}

func decompose(sheet *grid.Sheet, opts grid.Options) string {
	d := grid.NewDecomposer(opts, zap.NewNop())
	blocks, err := d.DecomposeSheet(sheet)

	tw := debug.NewTreeWriter()
	tw.Line(0, "Worksheet %q rows=%d merges=%d", sheet.Name, len(sheet.Rows), len(sheet.Merges))
	if err != nil {
		tw.Line(1, "error: %v", err)
	}
	for _, w := range d.Warnings() {
		tw.Line(1, "warning: %s", w)
	}
	grid.DumpTo(tw, 1, blocks)
	return tw.String()
}
