package section

import (
	"context"

	"gsdoc/grid"
	"gsdoc/toc"
)

// slotFetcher renders header or footer slot cell into blocks. It is only
// called for non blank cells.
type slotFetcher func(ctx context.Context, c *grid.Cell) ([]grid.Block, error)

// slotCells are source cells of first, odd and even slots.
type slotCells struct {
	first, odd, even *grid.Cell
}

type headerFooterResult struct {
	Header             HeaderFooter
	Footer             HeaderFooter
	DifferentFirstPage bool
}

// resolveHeaderFooter decides header and footer of a section. When parent
// overrides header or footer its slots are taken verbatim and its
// different-first-page flag becomes the section's one, the other side is
// resolved from section's own cells using that flag.
func resolveHeaderFooter(ctx context.Context, fetch slotFetcher, header, footer slotCells, differentFirstPage bool, parent *Section) (headerFooterResult, error) {
	overrideHeader := parent != nil && parent.OverrideHeader
	overrideFooter := parent != nil && parent.OverrideFooter

	res := headerFooterResult{DifferentFirstPage: differentFirstPage}
	if overrideHeader || overrideFooter {
		res.DifferentFirstPage = parent.DifferentFirstPage
	}

	var err error
	if overrideHeader {
		res.Header = parent.Header
	} else if res.Header, err = resolveSlots(ctx, fetch, header, res.DifferentFirstPage); err != nil {
		return headerFooterResult{}, err
	}

	if overrideFooter {
		res.Footer = parent.Footer
	} else if res.Footer, err = resolveSlots(ctx, fetch, footer, res.DifferentFirstPage); err != nil {
		return headerFooterResult{}, err
	}
	return res, nil
}

func resolveSlots(ctx context.Context, fetch slotFetcher, cells slotCells, differentFirstPage bool) (HeaderFooter, error) {
	var (
		hf  HeaderFooter
		err error
	)
	if differentFirstPage {
		if hf.First, err = fetchSlot(ctx, fetch, cells.first); err != nil {
			return HeaderFooter{}, err
		}
	}
	if hf.Odd, err = fetchSlot(ctx, fetch, cells.odd); err != nil {
		return HeaderFooter{}, err
	}
	// even page falls back to whatever odd resolved to, including nothing
	if toc.Blank(cells.even) {
		hf.Even = hf.Odd
		return hf, nil
	}
	if hf.Even, err = fetchSlot(ctx, fetch, cells.even); err != nil {
		return HeaderFooter{}, err
	}
	hf.DifferentOddEven = true
	return hf, nil
}

func fetchSlot(ctx context.Context, fetch slotFetcher, c *grid.Cell) ([]grid.Block, error) {
	if toc.Blank(c) {
		return nil, nil
	}
	return fetch(ctx, c)
}
