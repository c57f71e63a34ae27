package utils

import (
	"context"
	"movieapi/cache"
	"movieapi/logging"
	"movieapi/metrics"
	ratingService "movieapi/services/rating"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcileRatings recomputes every movie's aggregate from its ratings in one transaction
// and drops cached averages afterwards.
func ReconcileRatings(db *gorm.DB, c *cache.Cache) error {
	start := time.Now()

	var touched int64
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := ratingService.ReconcileAll(tx)
		touched = n
		return err
	})
	if err != nil {
		metrics.ReconcileRuns.WithLabelValues("error").Inc()
		logging.Error().Err(err).Str("component", "rating-reconciler").Msg("reconciliation failed")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.InvalidateAll(ctx)

	metrics.ReconcileRuns.WithLabelValues("success").Inc()
	logging.Info().
		Str("component", "rating-reconciler").
		Int64("movies", touched).
		Dur("took", time.Since(start)).
		Msg("ratings reconciled")
	return nil
}

// StartRatingReconciler runs ReconcileRatings on the given cron schedule.
// An empty schedule disables reconciliation and returns a nil scheduler.
func StartRatingReconciler(db *gorm.DB, schedule string, c *cache.Cache) (*cron.Cron, error) {
	if schedule == "" {
		logging.Info().Str("component", "rating-reconciler").Msg("reconciliation disabled")
		return nil, nil
	}

	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := scheduler.AddFunc(schedule, func() {
		_ = ReconcileRatings(db, c)
	}); err != nil {
		return nil, err
	}

	scheduler.Start()
	logging.Info().Str("component", "rating-reconciler").Str("schedule", schedule).Msg("reconciliation scheduled")
	return scheduler, nil
}
