package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cryptonews-telegram-bot/config"
	"cryptonews-telegram-bot/internal/commands"
	"cryptonews-telegram-bot/internal/metrics"
	"cryptonews-telegram-bot/internal/news"
	"cryptonews-telegram-bot/internal/scheduler"
	"cryptonews-telegram-bot/internal/stats"
	"cryptonews-telegram-bot/internal/telegram"
	"cryptonews-telegram-bot/internal/webhook"
	"cryptonews-telegram-bot/lib/translation"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func init() {
	config.InitConfig()
	setupLogging()
}

func main() {
	translation.Configure("locales", config.GetString("lang"))
	log.Infof("Using language %s", translation.GetLanguage())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bot, err := telegram.NewBot(telegram.BotConfig{
		Token: config.GetString("telegram_bot_token"),
		Debug: config.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Infof("Authorized as @%s", bot.Username)

	if url := config.GetString("webhook_url"); url != "" {
		if err := bot.SetWebhook(url); err != nil {
			log.Fatalf("Failed to set webhook: %v", err)
		}
	}

	clock := clockwork.NewRealClock()
	botMetrics := metrics.New(prometheus.DefaultRegisterer)
	store := stats.NewStore(stats.DefaultRetention)
	metrics.RegisterStats(prometheus.DefaultRegisterer, store)

	fetcher := news.NewFetcher(config.GetString("news_endpoint"), config.GetString("news_api_key"), botMetrics)
	broadcaster := news.NewBroadcaster(
		fetcher,
		bot,
		store,
		telegram.ParseDestination(config.GetString("news_chat_id")),
		config.GetString("promo_text"),
		clock,
		botMetrics,
	)
	router := commands.NewRouter(bot, broadcaster, store, config.GetInt64Slice("admin_ids"), clock, botMetrics)

	go scheduler.New(broadcaster, clock, config.GetInt("news_interval_hours")).Run(ctx)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.GetInt("port")),
		Handler: newMux(webhook.NewHandler(router, botMetrics)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown failed: %v", err)
		}
	}()

	log.Infof("Listening for webhook, metrics and health on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Info("Bot stopped, shutting down...")
}

func setupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(config.GetString("log_level"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting telegram bot...")
}

func newMux(hook http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(webhook.Path, hook)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthCheckHandler)
	return mux
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
