package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	eventsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_events_recorded_total",
			Help: "Total activity events recorded, by action",
		},
		[]string{"action"},
	)

	eventsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engagement_events_rejected_total",
			Help: "Total event submissions rejected at validation",
		},
	)

	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_emails_sent_total",
			Help: "Total campaign emails sent successfully",
		},
		[]string{"campaign", "provider"},
	)

	emailsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_emails_failed_total",
			Help: "Total failed campaign email sends",
		},
		[]string{"campaign", "provider"},
	)

	emailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engagement_email_send_duration_seconds",
			Help:    "Email sending duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"campaign", "provider"},
	)

	campaignRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_campaign_runs_total",
			Help: "Total campaign runs, by outcome",
		},
		[]string{"campaign", "status"},
	)

	campaignAudienceSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "engagement_campaign_audience_size",
			Help: "Audience size resolved by the last campaign run",
		},
		[]string{"campaign"},
	)

	watermarkHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_watermark_hits_total",
			Help: "Recipients skipped because they were notified within the cooldown window",
		},
		[]string{"campaign"},
	)
)

func RecordEvent(action string)  { eventsRecordedTotal.WithLabelValues(action).Inc() }
func RecordEventRejected()       { eventsRejectedTotal.Inc() }

func RecordEmailSent(campaign, provider string, d time.Duration) {
	emailsSentTotal.WithLabelValues(campaign, provider).Inc()
	emailSendDuration.WithLabelValues(campaign, provider).Observe(d.Seconds())
}

func RecordEmailFailed(campaign, provider string) {
	emailsFailedTotal.WithLabelValues(campaign, provider).Inc()
}

func RecordCampaignRun(campaign, status string) {
	campaignRunsTotal.WithLabelValues(campaign, status).Inc()
}

func RecordAudienceSize(campaign string, n int) {
	campaignAudienceSize.WithLabelValues(campaign).Set(float64(n))
}

func RecordWatermarkHit(campaign string) { watermarkHitsTotal.WithLabelValues(campaign).Inc() }

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
