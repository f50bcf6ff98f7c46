// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/davmoraru/wayfind/internal/cities"
	"github.com/davmoraru/wayfind/internal/logger"
)

// CitySource supplies the supported city names.
type CitySource interface {
	Cities(ctx context.Context) ([]string, error)
}

// CitiesReloader handles periodic refreshing of the supported city list.
type CitiesReloader struct {
	source        CitySource
	index         *cities.Index
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewCitiesReloader(
	source CitySource,
	idx *cities.Index,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CitiesReloader {
	return &CitiesReloader{
		source:        source,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the list once, then refreshes it periodically and on
// manual trigger. The initial load failing is not fatal: the source may
// simply not be up yet, and readiness reporting covers that window.
func (cr *CitiesReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		cr.logger.Warn("initial city list load failed, will retry on schedule",
			logger.Error(err))
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload city list",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual city list reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload city list",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (cr *CitiesReloader) Stop() {
	close(cr.stopCh)
}

// Reload fetches the city names and updates the index.
func (cr *CitiesReloader) Reload(ctx context.Context) error {
	names, err := cr.source.Cities(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch city list: %w", err)
	}

	cr.index.Update(names)
	cr.logger.Info("city list refreshed",
		logger.Int("count", cr.index.Count()))
	return nil
}
