package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "cryptonews"
	subsystem = "telegram_bot"
)

type BotMetrics struct {
	CommandsProcessed *prometheus.CounterVec
	MessagesHandled   prometheus.Counter
	NewsFetches       *prometheus.CounterVec
	NewsPosts         *prometheus.CounterVec
	ModerationActions *prometheus.CounterVec
	WebhookRequests   *prometheus.CounterVec
}

// StatsSource exposes the in-memory counters as gauges.
type StatsSource interface {
	UniqueUsers() int
	MessageLogSize() int
}

func New(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		CommandsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_processed_total",
			Help:      "The total number of processed commands",
		}, []string{"command"}),
		MessagesHandled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "messages_handled_total",
			Help:      "The total number of handled messages",
		}),
		NewsFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "news_fetch_total",
			Help:      "News API calls by result",
		}, []string{"result"}),
		NewsPosts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "news_posts_total",
			Help:      "Scheduled news broadcasts by outcome",
		}, []string{"outcome"}),
		ModerationActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "moderation_actions_total",
			Help:      "Deleted messages and posted warnings by outcome",
		}, []string{"action", "outcome"}),
		WebhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "webhook_requests_total",
			Help:      "Inbound webhook calls by response code",
		}, []string{"code"}),
	}

	reg.MustRegister(
		m.CommandsProcessed,
		m.MessagesHandled,
		m.NewsFetches,
		m.NewsPosts,
		m.ModerationActions,
		m.WebhookRequests,
	)

	return m
}

// RegisterStats publishes unique user and message log gauges read from src.
func RegisterStats(reg prometheus.Registerer, src StatsSource) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unique_users",
			Help:      "Distinct senders seen since start",
		}, func() float64 { return float64(src.UniqueUsers()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "message_log_size",
			Help:      "Messages currently retained for the stats report",
		}, func() float64 { return float64(src.MessageLogSize()) }),
	)
}

func Outcome(ok bool) string {
	if ok {
		return "sent"
	}
	return "failed"
}
