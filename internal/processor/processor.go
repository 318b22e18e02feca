package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tsekula/n8n-python/internal/models"
)

// transform is one item-level operation and the way its failures are
// recorded on the item.
type transform struct {
	apply func(ctx context.Context, it *models.Item) error
	fail  func(it *models.Item, err error)
}

func (p *implProcessor) transform(kind Kind) transform {
	switch kind {
	case KindAudio:
		return transform{apply: p.synthesize, fail: failAudio}
	case KindExtract:
		return transform{apply: p.extract, fail: failExtract}
	case KindReplace:
		return transform{apply: p.replace, fail: failReplace}
	}
	return transform{
		apply: func(context.Context, *models.Item) error {
			_, err := ParseKind(string(kind))
			return err
		},
		fail: failExtract,
	}
}

// Run applies kind to every item in order.
func (p *implProcessor) Run(ctx context.Context, kind Kind, items []models.Item) []models.Item {
	runID := uuid.NewString()
	startTime := time.Now()
	t := p.transform(kind)

	p.logger.Info(ctx, "Batch %s: %s on %d item(s)", runID, kind, len(items))

	results := make([]models.Item, len(items))
	failed := 0
	for i, in := range items {
		it := in.Clone()

		err := ctx.Err()
		if err != nil {
			err = fmt.Errorf("%w: batch cancelled: %w", models.ErrUnexpected, err)
		} else {
			err = safeApply(ctx, t.apply, &it)
		}

		if err != nil {
			failed++
			t.fail(&it, err)
			p.logger.Error(ctx, "Batch %s: item %d failed (%s): %v", runID, i, models.KindOf(err), err)
		} else {
			p.logger.Debug(ctx, "Batch %s: item %d done", runID, i)
		}
		results[i] = it
	}

	p.logger.Info(ctx, "Batch %s: %d succeeded, %d failed in %s", runID, len(items)-failed, failed, time.Since(startTime))
	return results
}

// safeApply turns a panic inside a transform into an item failure.
func safeApply(ctx context.Context, fn func(context.Context, *models.Item) error, it *models.Item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", models.ErrUnexpected, r)
		}
	}()
	return fn(ctx, it)
}
