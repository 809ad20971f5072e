package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopsignal/engagement/internal/circuitbreaker"
	"github.com/shopsignal/engagement/internal/config"
	"github.com/shopsignal/engagement/internal/domain"
	"github.com/shopsignal/engagement/internal/metrics"
)

type renderFunc func(domain.AudienceEntry) (subject, text, html string, err error)

// Sender renders campaign emails and pushes them through the configured
// provider behind a circuit breaker.
type Sender struct {
	provider Provider
	cfg      config.EmailConfig
	breaker  *circuitbreaker.Breaker
	log      zerolog.Logger
}

// NewSender builds a Sender for the provider named in cfg.Provider.
func NewSender(cfg config.EmailConfig, log zerolog.Logger) (*Sender, error) {
	var provider Provider
	var err error

	switch cfg.Provider {
	case "sendgrid":
		provider, err = NewSendGridProvider(cfg)
	case "ses":
		provider, err = NewSESProvider(cfg)
	case "smtp":
		provider, err = NewSMTPProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email provider: %w", err)
	}

	// 5 failures before opening, 30s reset, 2 half-open probes
	breaker := circuitbreaker.New(5, 30*time.Second, 2)

	return &Sender{
		provider: provider,
		cfg:      cfg,
		breaker:  breaker,
		log:      log.With().Str("component", "email_sender").Logger(),
	}, nil
}

// NewSenderWithProvider wires an explicit provider. Used by tests and the
// dev fake.
func NewSenderWithProvider(cfg config.EmailConfig, provider Provider, log zerolog.Logger) *Sender {
	return &Sender{
		provider: provider,
		cfg:      cfg,
		breaker:  circuitbreaker.New(5, 30*time.Second, 2),
		log:      log.With().Str("component", "email_sender").Logger(),
	}
}

func (s *Sender) SendAbandonedCart(ctx context.Context, e domain.AudienceEntry) error {
	return s.send(ctx, domain.CampaignAbandonedCart, e, RenderAbandonedCart)
}

func (s *Sender) SendFrequentViewer(ctx context.Context, e domain.AudienceEntry) error {
	return s.send(ctx, domain.CampaignFrequentViewer, e, RenderFrequentViewer)
}

func (s *Sender) SendPurchaseConfirmation(ctx context.Context, e domain.AudienceEntry) error {
	return s.send(ctx, domain.CampaignPurchaseConfirm, e, RenderPurchaseConfirmation)
}

func (s *Sender) send(ctx context.Context, campaign string, e domain.AudienceEntry, render renderFunc) error {
	subject, text, html, err := render(e)
	if err != nil {
		metrics.RecordEmailFailed(campaign, s.ProviderName())
		return domain.ErrProvider("failed to render "+campaign+" email", err)
	}

	msg := &Message{
		To:       e.Email,
		From:     s.cfg.FromEmail,
		FromName: s.cfg.FromName,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	}

	start := time.Now()
	err = s.breaker.Call(ctx, func() error {
		return s.provider.Send(ctx, msg)
	})
	if err != nil {
		metrics.RecordEmailFailed(campaign, s.ProviderName())
		return domain.ErrProvider("failed to send "+campaign+" email", err)
	}

	metrics.RecordEmailSent(campaign, s.ProviderName(), time.Since(start))
	s.log.Debug().
		Str("campaign", campaign).
		Str("user_id", e.UserID).
		Msg("email sent")
	return nil
}

// ProviderName reports which backing provider is wired.
func (s *Sender) ProviderName() string {
	if s.provider == nil {
		return "unknown"
	}
	return s.provider.Name()
}

// CheckHealth reports whether a provider is wired. Providers expose no
// cheap ping endpoint, so this stays a local check.
func (s *Sender) CheckHealth(ctx context.Context) error {
	if s.provider == nil {
		return fmt.Errorf("email provider not initialized")
	}
	return nil
}
