package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/shopsignal/engagement/internal/application/activity"
	"github.com/shopsignal/engagement/internal/application/campaign"
	"github.com/shopsignal/engagement/internal/application/scoring"
	"github.com/shopsignal/engagement/internal/application/segment"
	"github.com/shopsignal/engagement/internal/config"
	"github.com/shopsignal/engagement/internal/domain"
	"github.com/shopsignal/engagement/internal/infrastructure/db/postgres"
	"github.com/shopsignal/engagement/internal/infrastructure/email"
	"github.com/shopsignal/engagement/internal/infrastructure/messaging/rabbitmq"
	appredis "github.com/shopsignal/engagement/internal/infrastructure/redis"
	"github.com/shopsignal/engagement/internal/logger"
	"github.com/shopsignal/engagement/internal/transport/http/handlers"
	"github.com/shopsignal/engagement/internal/transport/http/router"
)

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			zlog.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLog := zlog.Logger

	// Infrastructure
	activityRepo := postgres.NewActivityRepo(db)
	segmentRepo := postgres.NewSegmentRepo(db)

	var rdb = newRedis(cfg.RedisURL)
	var watermarks campaign.WatermarkStore = campaign.NoopWatermarks{}
	if rdb != nil {
		watermarks = appredis.NewWatermarkStore(rdb, appLog)
		defer rdb.Close()
	}

	sender := newSender(cfg)
	var dispatcher campaign.Dispatcher = sender

	// Application
	recorder := activity.New(activityRepo, sysClock{})
	scores := scoring.New(activityRepo)
	resolver := segment.NewResolver(segmentRepo, cfg.ViewThreshold, cfg.DefaultProductImage, appLog)
	runner := campaign.NewRunner(watermarks, cfg.CampaignCooldown, cfg.SendTimeout, appLog)

	scheduler := campaign.NewScheduler(runner, sysClock{}, cfg.RunTimeout, appLog)
	scheduler.Register(campaign.Job{
		Name:     domain.CampaignAbandonedCart,
		Audience: resolver.AbandonedCart,
		Send:     dispatcher.SendAbandonedCart,
	}, cfg.AbandonedCartAt)
	scheduler.Register(campaign.Job{
		Name:     domain.CampaignFrequentViewer,
		Audience: resolver.FrequentViewers,
		Send:     dispatcher.SendFrequentViewer,
	}, cfg.FrequentViewerAt)
	scheduler.Register(campaign.Job{
		Name:     domain.CampaignPurchaseConfirm,
		Audience: resolver.RecentPurchasers,
		Send:     dispatcher.SendPurchaseConfirmation,
	}, cfg.PurchaseConfirmAt)
	scheduler.Start(ctx)

	confirmer := campaign.NewConfirmer(recorder, resolver, runner, dispatcher.SendPurchaseConfirmation, appLog)

	if cfg.RabbitURL != "" {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitOrderQueue, confirmer, appLog)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit consumer init failed")
		}
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				zlog.Error().Err(err).Msg("order consumer stopped")
			}
		}()
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: order events arrive via the HTTP hook only")
	}

	// Transport
	h := handlers.NewEngagementHandler(recorder, scores, confirmer, scheduler)
	z := handlers.NewHealthHandler(db, rdb)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(h, z, cfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("provider", dispatcher.ProviderName()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("http shutdown failed")
	}
}

func newRedis(redisURL string) *goredis.Client {
	if redisURL == "" {
		zlog.Warn().Msg("REDIS_URL empty: campaign dedup disabled")
		return nil
	}
	rdb, err := appredis.NewClient(redisURL)
	if err != nil {
		zlog.Warn().Err(err).Msg("redis unavailable: campaign dedup disabled")
		return nil
	}
	return rdb
}

func newSender(cfg *config.Config) *email.Sender {
	sender, err := email.NewSender(cfg.Email, zlog.Logger)
	if err != nil {
		if cfg.AppEnv == "dev" {
			zlog.Warn().Err(err).Msg("email provider init failed, using in-memory fake")
			return email.NewSenderWithProvider(cfg.Email, email.NewFakeProvider(), zlog.Logger)
		}
		zlog.Fatal().Err(err).Msg("email provider init failed")
	}
	return sender
}
