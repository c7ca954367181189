package commands

import (
	"bytes"
	"context"
	"runtime"
	"time"

	"cryptonews-telegram-bot/internal/metrics"
	"cryptonews-telegram-bot/internal/telegram"
	"cryptonews-telegram-bot/internal/types"
	"cryptonews-telegram-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

type Messenger interface {
	SendMessage(m telegram.Message) telegram.Result
	DeleteMessage(chatID int64, messageID int) telegram.Result
}

// PostComposer builds the news text with the promotional suffix.
type PostComposer interface {
	ComposePost(ctx context.Context) string
}

type Stats interface {
	RecordMessage(userID int64, at time.Time)
	IncrementReplies()
	RenderSummary(now time.Time) string
}

type Router struct {
	messenger Messenger
	news      PostComposer
	stats     Stats
	admins    map[int64]struct{}
	clock     clockwork.Clock
	metrics   *metrics.BotMetrics
}

func NewRouter(messenger Messenger, news PostComposer, stats Stats, adminIDs []int64,
	clock clockwork.Clock, m *metrics.BotMetrics) *Router {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Router{
		messenger: messenger,
		news:      news,
		stats:     stats,
		admins:    admins,
		clock:     clock,
		metrics:   m,
	}
}

// HandleUpdate processes one telegram update. Updates without a message are
// ignored.
func (r *Router) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			stackBuf := make([]byte, 1024)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("Recovered from panic: %v\nStack trace: %s", rec, stackTrace)
		}
	}()

	if u.Message == nil || u.Message.Chat == nil {
		log.Debug("Received non-message update")
		return
	}

	r.HandleMessage(ctx, toIncoming(u.Message, r.clock.Now()))
}

func toIncoming(m *tgbotapi.Message, now time.Time) types.IncomingMessage {
	sender := m.Chat.ID
	if m.From != nil {
		sender = m.From.ID
	}

	return types.IncomingMessage{
		SenderID:   sender,
		ChatID:     m.Chat.ID,
		MessageID:  m.MessageID,
		Text:       m.Text,
		ReceivedAt: now,
	}
}

func (r *Router) HandleMessage(ctx context.Context, msg types.IncomingMessage) {
	cmd := ParseCommand(msg.Text)
	if r.metrics != nil {
		r.metrics.MessagesHandled.Inc()
		r.metrics.CommandsProcessed.WithLabelValues(cmd.String()).Inc()
	}

	logger := log.WithFields(log.Fields{
		"chat_id":    msg.ChatID,
		"message_id": msg.MessageID,
		"command":    cmd.String(),
	})
	logger.Debug("Handling message")

	switch cmd {
	case types.CommandNews:
		r.handleNews(ctx, msg)
	case types.CommandStats:
		r.handleStats(msg)
	default:
		r.handleText(msg)
	}
}

func (r *Router) handleNews(ctx context.Context, msg types.IncomingMessage) {
	r.replyCounted(msg, r.news.ComposePost(ctx))
}

func (r *Router) handleStats(msg types.IncomingMessage) {
	if _, ok := r.admins[msg.SenderID]; !ok {
		r.reply(msg, translation.Translate("⛔ This command is for admins only."))
		return
	}

	r.replyCounted(msg, r.stats.RenderSummary(r.clock.Now()))
}

func (r *Router) handleText(msg types.IncomingMessage) {
	r.stats.RecordMessage(msg.SenderID, msg.ReceivedAt)

	if NeedsClarification(msg.Text) {
		r.replyCounted(msg, translation.Translate("🤔 Could you clarify your question? What exactly are you interested in?"))
	}

	if IsSpam(msg.Text) {
		r.moderate(msg)
	}
}

// moderate deletes the message and warns the chat. Both steps are best
// effort and run regardless of each other's outcome.
func (r *Router) moderate(msg types.IncomingMessage) {
	logger := log.WithFields(log.Fields{"chat_id": msg.ChatID, "message_id": msg.MessageID})

	del := r.messenger.DeleteMessage(msg.ChatID, msg.MessageID)
	r.countModeration("delete", del)
	if !del.Sent() {
		logger.Errorf("Failed to delete spam message: %v", del.Err)
	}

	warn := r.messenger.SendMessage(telegram.Message{
		ChatID: msg.ChatID,
		Text:   translation.Translate("⚠️ Gambling and spam are not allowed in this chat."),
	})
	r.countModeration("warn", warn)
	if !warn.Sent() {
		logger.Errorf("Failed to post moderation warning: %v", warn.Err)
	}
}

func (r *Router) countModeration(action string, res telegram.Result) {
	if r.metrics != nil {
		r.metrics.ModerationActions.WithLabelValues(action, metrics.Outcome(res.Sent())).Inc()
	}
}

// replyCounted replies and counts a bot reply when the send succeeded.
func (r *Router) replyCounted(msg types.IncomingMessage, text string) {
	if r.reply(msg, text).Sent() {
		r.stats.IncrementReplies()
	}
}

func (r *Router) reply(msg types.IncomingMessage, text string) telegram.Result {
	res := r.messenger.SendMessage(telegram.Message{
		ChatID:  msg.ChatID,
		ReplyTo: msg.MessageID,
		Text:    text,
	})
	if !res.Sent() {
		log.WithField("chat_id", msg.ChatID).Errorf("Failed to send reply: %v", res.Err)
	}
	return res
}
