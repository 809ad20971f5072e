// Package campaign runs scheduled, segment-targeted email campaigns.
package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopsignal/engagement/internal/domain"
	"github.com/shopsignal/engagement/internal/metrics"
)

// Runner executes one campaign run: resolve the audience, then attempt every
// recipient exactly once, isolating per-recipient failures.
type Runner struct {
	watermarks WatermarkStore

	cooldown    time.Duration
	sendTimeout time.Duration

	log zerolog.Logger
}

func NewRunner(watermarks WatermarkStore, cooldown, sendTimeout time.Duration, log zerolog.Logger) *Runner {
	if cooldown <= 0 {
		cooldown = 24 * time.Hour
	}
	if sendTimeout <= 0 {
		sendTimeout = 15 * time.Second
	}
	return &Runner{
		watermarks:  watermarks,
		cooldown:    cooldown,
		sendTimeout: sendTimeout,
		log:         log.With().Str("component", "campaign_runner").Logger(),
	}
}

// Run resolves the job's audience and dispatches to each entry in turn. A
// send failure for one recipient never aborts the rest; only a failed
// audience resolution or a spent context fails the run.
func (r *Runner) Run(ctx context.Context, job Job) error {
	log := r.log.With().Str("campaign", job.Name).Logger()

	entries, err := job.Audience(ctx)
	if err != nil {
		return fmt.Errorf("resolve audience for %s: %w", job.Name, err)
	}

	metrics.RecordAudienceSize(job.Name, len(entries))
	log.Info().Int("audience", len(entries)).Msg("campaign run starting")

	var sent, skipped, failed int
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("campaign %s run deadline exceeded after %d sends: %w", job.Name, sent, err)
		}

		switch r.Dispatch(ctx, job.Name, entry, job.Send) {
		case dispatchSent:
			sent++
		case dispatchSkipped:
			skipped++
		case dispatchFailed:
			failed++
		}
	}

	log.Info().Int("sent", sent).Int("skipped", skipped).Int("failed", failed).
		Msg("campaign run finished")
	return nil
}

type dispatchOutcome int

const (
	dispatchSent dispatchOutcome = iota
	dispatchSkipped
	dispatchFailed
)

// Dispatch sends to a single recipient with watermark dedup and a bounded
// per-recipient deadline. Shared by scheduled runs and the synchronous
// order-confirmation path.
func (r *Runner) Dispatch(ctx context.Context, campaign string, entry domain.AudienceEntry, send SendFunc) dispatchOutcome {
	log := r.log.With().
		Str("campaign", campaign).
		Str("user_id", entry.UserID).
		Str("product_id", entry.ProductID).
		Logger()

	key := watermarkKey(campaign, entry)
	seen, err := r.watermarks.Seen(ctx, key)
	if err != nil {
		// dedup is best-effort: prefer a possible repeat email over a
		// silently dropped campaign when redis is unreachable
		log.Warn().Err(err).Msg("watermark lookup failed, sending anyway")
	} else if seen {
		metrics.RecordWatermarkHit(campaign)
		log.Debug().Msg("recipient inside cooldown window, skipping")
		return dispatchSkipped
	}

	sendCtx, cancel := context.WithTimeout(ctx, r.sendTimeout)
	err = send(sendCtx, entry)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("send failed, continuing with remaining recipients")
		return dispatchFailed
	}

	if err := r.watermarks.MarkSent(ctx, key, r.cooldown); err != nil {
		log.Warn().Err(err).Msg("failed to record send watermark")
	}
	return dispatchSent
}

func watermarkKey(campaign string, e domain.AudienceEntry) string {
	return fmt.Sprintf("campaign:%s:%s:%s", campaign, e.UserID, e.ProductID)
}
