package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pcbanai/core/internal/domain"
	"pcbanai/core/internal/normalize"
	"pcbanai/core/internal/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// RowSource is the read side of the component store.
type RowSource interface {
	Rows(ctx context.Context, table string) ([]map[string]any, error)
}

// Source produces normalized component lists, optionally filtered by
// canonical category. Implemented by Aggregator and its cache wrapper.
type Source interface {
	Components(ctx context.Context, filter domain.Category) ([]domain.Component, error)
}

// ErrStoreUnavailable is returned only when every queried table failed with a
// real error. Partial failures degrade to a shorter list instead.
var ErrStoreUnavailable = errors.New("component store unavailable")

// Aggregator fans out over every configured (category, retailer) table pair,
// normalizes each row and concatenates the results. Stateless per call.
type Aggregator struct {
	store     RowSource
	retailers []domain.Retailer
}

func NewAggregator(store RowSource, retailers []domain.Retailer) *Aggregator {
	return &Aggregator{
		store:     store,
		retailers: retailers,
	}
}

type fetchJob struct {
	key      domain.RawCategory
	retailer domain.Retailer
	table    string
}

// Components fetches and normalizes all rows for the requested category, or
// for every category when filter is empty. A missing retailer table is
// skipped silently; any other per-table failure is logged and skipped, so one
// broken table never aborts the aggregation.
func (a *Aggregator) Components(ctx context.Context, filter domain.Category) ([]domain.Component, error) {
	keys := a.expandFilter(filter)

	jobs := make([]fetchJob, 0, len(keys)*len(a.retailers))
	for _, key := range keys {
		base := domain.BaseTables[key]
		for _, retailer := range a.retailers {
			jobs = append(jobs, fetchJob{
				key:      key,
				retailer: retailer,
				table:    retailer.TableName(base),
			})
		}
	}

	perJob := make([][]domain.Component, len(jobs))

	var mu sync.Mutex
	var lastErr error
	hardFailures := 0

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		g.Go(func() error {
			rows, err := a.store.Rows(ctx, job.table)
			if err != nil {
				if errors.Is(err, repository.ErrTableNotFound) {
					// Retailer has no data for this category yet.
					log.Debugf("Skipping missing table %s", job.table)
					return nil
				}
				log.Errorf("Failed to query %s: %v", job.table, err)
				mu.Lock()
				hardFailures++
				lastErr = err
				mu.Unlock()
				return nil
			}

			components := make([]domain.Component, 0, len(rows))
			for _, row := range rows {
				components = append(components, normalize.Row(row, job.key, job.retailer))
			}
			perJob[i] = components
			return nil
		})
	}

	// Jobs swallow their own errors, so Wait only propagates ctx failures.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(jobs) > 0 && hardFailures == len(jobs) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lastErr)
	}

	all := make([]domain.Component, 0)
	for _, components := range perJob {
		all = append(all, components...)
	}
	return all, nil
}

func (a *Aggregator) expandFilter(filter domain.Category) []domain.RawCategory {
	if filter == "" {
		return domain.RawCategories
	}
	return filter.RawKeys()
}
