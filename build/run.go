package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gsdoc/config"
	"gsdoc/grid"
	"gsdoc/section"
	"gsdoc/source"
	"gsdoc/state"
	"gsdoc/utils/images"
)

// Run is action of resolve subcommand.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := strings.TrimSpace(cmd.Args().Get(0))
	if len(src) == 0 {
		return errors.New("no input spreadsheet has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	env.Overwrite = cmd.Bool("overwrite")

	opts := Options{DryRun: cmd.Bool("dry-run"), Assets: cmd.String("assets")}
	if !opts.DryRun {
		var err error
		if opts.Destination, err = destination(src, dst, env.Overwrite); err != nil {
			return err
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", opts.Destination), zap.Bool("dry-run", opts.DryRun))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	_, err := Process(ctx, env, src, opts, log)
	return err
}

// Options of a single processing run.
type Options struct {
	// Destination of YAML tree, ignored for dry run.
	Destination string
	// Assets is directory for acquired images and files. When empty it is
	// derived from destination, dry run uses temporary work directory.
	Assets string
	DryRun bool
}

// destination returns absolute path of resulting YAML file. Directory
// destinations get file named after spreadsheet.
func destination(src, dst string, overwrite bool) (string, error) {
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".yaml"
	if len(dst) == 0 {
		dst = name
	} else if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		dst = filepath.Join(dst, name)
	}
	dst, err := filepath.Abs(dst)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return "", fmt.Errorf("destination file already exists: %s", dst)
	}
	return dst, nil
}

// GridOptions converts configuration into decomposer options.
func GridOptions(cfg config.GridConfig) grid.Options {
	return grid.Options{
		PixelsPerUnit:      cfg.PixelsPerUnit,
		ColumnSeparator:    cfg.ColumnSeparator,
		RowSeparator:       cfg.RowSeparator,
		DefaultColumnWidth: cfg.DefaultColumnWidth,
		DefaultRowHeight:   cfg.DefaultRowHeight,
		StrictMerges:       cfg.StrictMerges,
	}
}

// Process resolves spreadsheet into section tree and writes it out,
// independently of command line framework.
func Process(ctx context.Context, env *state.LocalEnv, src string, opts Options, log *zap.Logger) (tree section.Tree, err error) {
	doc := env.Cfg.Document

	root := doc.Root
	if len(root) == 0 {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("unable to get working directory: %w", err)
		}
	}

	assets := opts.Assets
	switch {
	case opts.DryRun:
		if assets, err = env.WorkDir(); err != nil {
			return nil, err
		}
		defer func() {
			err = multierr.Append(err, env.RemoveWorkDir())
		}()
	case len(assets) == 0:
		assets = strings.TrimSuffix(opts.Destination, filepath.Ext(opts.Destination)) + "_assets"
	}

	wb := source.NewWorkbook(root, doc.TOCWorksheet, log)
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close workbooks: %w", cerr))
		}
	}()

	r := section.NewResolver(
		source.Retrying(wb, doc.Fetch.Attempts, doc.Fetch.Delay, log),
		source.NewLocalImages(root, assets, images.NormalizeOptions{
			Format:      doc.Images.Format,
			MaxWidth:    doc.Images.MaxWidth,
			MaxHeight:   doc.Images.MaxHeight,
			JPEGQuality: doc.Images.JPEGQuality,
			DPI:         doc.Images.DPI,
		}, log),
		source.NewLocalFiles(root, assets, log),
		section.Options{Layout: &doc.Layout, Grid: GridOptions(doc.Grid)},
		log,
	)

	if tree, err = r.Resolve(ctx, src); err != nil {
		return nil, fmt.Errorf("unable to resolve %q: %w", src, err)
	}

	dump := tree.String()
	env.Rpt.StoreData("tree.txt", []byte(dump))
	log.Debug("Section tree resolved", zap.Int("sections", len(section.Flatten(tree))))

	if opts.DryRun {
		log.Info("Dry run, nothing written", zap.Int("sections", len(section.Flatten(tree))))
		return tree, nil
	}

	if err := writeTreeFile(opts.Destination, src, env.RunID.String(), tree); err != nil {
		return nil, err
	}
	if err := env.Rpt.StoreCopy("result.yaml", opts.Destination); err != nil {
		log.Warn("Unable to store result in debug report", zap.Error(err))
	}
	log.Info("Section tree written", zap.String("file", opts.Destination), zap.String("assets", assets))
	return tree, nil
}
