package news

import (
	"context"
	"time"

	"cryptonews-telegram-bot/internal/metrics"
	"cryptonews-telegram-bot/internal/telegram"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// TopNewsSource yields a postable news text.
type TopNewsSource interface {
	FetchTopNews(ctx context.Context) string
}

type Sender interface {
	SendMessage(m telegram.Message) telegram.Result
}

// Recorder is the part of the stats store a broadcast writes to.
type Recorder interface {
	RecordNewsPost(at time.Time)
	IncrementAdsShown()
}

type Broadcaster struct {
	source      TopNewsSource
	sender      Sender
	stats       Recorder
	destination telegram.Message
	promoText   string
	clock       clockwork.Clock
	metrics     *metrics.BotMetrics
}

func NewBroadcaster(source TopNewsSource, sender Sender, stats Recorder, destination telegram.Message,
	promoText string, clock clockwork.Clock, m *metrics.BotMetrics) *Broadcaster {
	return &Broadcaster{
		source:      source,
		sender:      sender,
		stats:       stats,
		destination: destination,
		promoText:   promoText,
		clock:       clock,
		metrics:     m,
	}
}

// ComposePost is the top news followed by the promotional text. The promo is
// appended whatever the fetch outcome was.
func (b *Broadcaster) ComposePost(ctx context.Context) string {
	return b.source.FetchTopNews(ctx) + "\n\n" + b.promoText
}

// BroadcastNews posts the composed news to the configured destination.
// A failed send is logged and dropped; the next cycle posts fresh news.
func (b *Broadcaster) BroadcastNews(ctx context.Context) telegram.Result {
	msg := b.destination
	msg.Text = b.ComposePost(ctx)
	msg.DisablePreview = true

	res := b.sender.SendMessage(msg)
	if b.metrics != nil {
		b.metrics.NewsPosts.WithLabelValues(metrics.Outcome(res.Sent())).Inc()
	}

	if !res.Sent() {
		log.Errorf("News broadcast failed: %v", res.Err)
		return res
	}

	b.stats.RecordNewsPost(b.clock.Now())
	b.stats.IncrementAdsShown()
	log.WithField("message_id", res.MessageID).Info("News posted")

	return res
}
