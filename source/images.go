package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"gsdoc/utils/images"
)

// LocalImages acquires images referenced by IMAGE formulas from local
// files, normalizes them and stores results in work directory.
type LocalImages struct {
	root  string
	dir   string
	opts  images.NormalizeOptions
	log   *zap.Logger
	cache map[string]string
	names map[string]int
}

func NewLocalImages(root, workDir string, opts images.NormalizeOptions, log *zap.Logger) *LocalImages {
	return &LocalImages{
		root:  root,
		dir:   filepath.Join(workDir, "images"),
		opts:  opts,
		log:   log.Named("images"),
		cache: make(map[string]string),
		names: make(map[string]int),
	}
}

// Acquire returns path to normalized copy of the image. Same source is
// processed only once.
func (li *LocalImages) Acquire(ctx context.Context, ref, relativeTo string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := localPath(li.root, ref, relativeTo)
	if err != nil {
		return "", err
	}
	if path, ok := li.cache[src]; ok {
		return path, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("unable to read image: %w", err)
	}
	if !filetype.IsImage(data) && !images.IsSVG(data) {
		return "", fmt.Errorf("unable to use %s: not an image", src)
	}

	img, err := images.Normalize(data, li.opts)
	if err != nil {
		return "", fmt.Errorf("unable to process image %s: %w", src, err)
	}

	if err := os.MkdirAll(li.dir, 0700); err != nil {
		return "", fmt.Errorf("unable to create images directory: %w", err)
	}
	dst := filepath.Join(li.dir, uniqueName(li.names, src, img.Format.Ext()))
	if err := os.WriteFile(dst, img.Data, 0644); err != nil {
		return "", fmt.Errorf("unable to store image: %w", err)
	}
	li.log.Debug("Image acquired", zap.String("source", src), zap.String("path", dst),
		zap.Int("width", img.Width), zap.Int("height", img.Height))

	li.cache[src] = dst
	return dst, nil
}

// localPath turns reference into absolute path of a local file. Relative
// references are resolved against directory of the spreadsheet they come
// from when it is a local file, otherwise against root.
func localPath(root, ref, relativeTo string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("unable to resolve empty reference")
	}
	if u, err := url.Parse(ref); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return "", fmt.Errorf("unable to acquire %q: %w", ref, ErrUnsupported)
		}
		ref = filepath.FromSlash(u.Path)
	}
	if !filepath.IsAbs(ref) {
		base := root
		if relativeTo != "" && filepath.IsAbs(relativeTo) {
			base = filepath.Dir(relativeTo)
		}
		ref = filepath.Join(base, ref)
	}
	return filepath.Abs(ref)
}

// uniqueName produces readable file name for source, names already handed
// out get numeric suffix.
func uniqueName(names map[string]int, src, ext string) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))
	if base == "" {
		base = "file"
	}
	n := names[base]
	names[base] = n + 1
	if n == 0 {
		return base + ext
	}
	return fmt.Sprintf("%s-%d%s", base, n, ext)
}
