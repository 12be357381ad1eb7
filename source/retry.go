package source

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"gsdoc/grid"
)

type retrying struct {
	ds       DataSource
	attempts int
	delay    time.Duration
	log      *zap.Logger
}

// Retrying wraps data source so transient failures are repeated up to
// attempts times with fixed delay between them. Other errors are returned
// immediately, exhaustion results in *FetchExhaustedError.
func Retrying(ds DataSource, attempts int, delay time.Duration, log *zap.Logger) DataSource {
	return &retrying{ds: ds, attempts: max(attempts, 1), delay: delay, log: log.Named("retry")}
}

func (r *retrying) FetchWorksheetGrid(ctx context.Context, spreadsheetID, worksheet string) (*grid.Sheet, error) {
	return retry(ctx, r, "fetch "+worksheet, func() (*grid.Sheet, error) {
		return r.ds.FetchWorksheetGrid(ctx, spreadsheetID, worksheet)
	})
}

type resolved struct {
	toc *grid.Sheet
	id  string
}

func (r *retrying) ResolveSpreadsheet(ctx context.Context, nameOrURL string) (*grid.Sheet, string, error) {
	res, err := retry(ctx, r, "resolve "+nameOrURL, func() (resolved, error) {
		toc, id, err := r.ds.ResolveSpreadsheet(ctx, nameOrURL)
		return resolved{toc, id}, err
	})
	return res.toc, res.id, err
}

func retry[R any](ctx context.Context, r *retrying, op string, f func() (R, error)) (R, error) {
	var zero R
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		res, err := f()
		if err == nil {
			return res, nil
		}
		var te *TransientFetchError
		if !errors.As(err, &te) {
			return zero, err
		}
		if attempt >= r.attempts {
			return zero, &FetchExhaustedError{Op: op, Attempts: attempt, Err: err}
		}
		r.log.Warn("Transient failure, retrying",
			zap.String("op", op), zap.Int("attempt", attempt), zap.Duration("delay", r.delay), zap.Error(err))

		t := time.NewTimer(r.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		case <-t.C:
		}
	}
}
