package telegram

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		API:      bot,
		Config:   c,
		Username: bot.Self.UserName,
	}, nil
}

// NewBotWithAPI wraps an existing API client.
func NewBotWithAPI(api API, c BotConfig) *Bot {
	return &Bot{API: api, Config: c}
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) Result {
	var msg tgbotapi.MessageConfig
	if m.ChannelUsername != "" {
		msg = tgbotapi.NewMessageToChannel(m.ChannelUsername, m.Text)
	} else {
		msg = tgbotapi.NewMessage(m.ChatID, m.Text)
	}
	msg.ReplyToMessageID = m.ReplyTo
	msg.DisableWebPagePreview = m.DisablePreview

	sent, err := b.API.Send(msg)
	if err != nil {
		return Failed(errors.Wrapf(err, "could not send message to %s", destination(m)))
	}
	return Sent(sent.MessageID)
}

// DeleteMessage removes a message from a chat
func (b *Bot) DeleteMessage(chatID int64, messageID int) Result {
	_, err := b.API.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	if err != nil {
		return Failed(errors.Wrapf(err, "could not delete message %d in chat %d", messageID, chatID))
	}
	return Sent(messageID)
}

// SetWebhook replaces any existing webhook registration with url.
func (b *Bot) SetWebhook(url string) error {
	if _, err := b.API.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return errors.Wrap(err, "could not remove webhook")
	}

	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return errors.Wrapf(err, "invalid webhook url %s", url)
	}

	if _, err := b.API.Request(webhook); err != nil {
		return errors.Wrap(err, "could not register webhook")
	}

	info, err := b.API.GetWebhookInfo()
	if err != nil {
		return errors.Wrap(err, "could not get webhook info")
	}

	if info.LastErrorDate != 0 {
		log.Warnf("Telegram webhook last error: %s", info.LastErrorMessage)
	}

	log.Infof("Webhook registered at %s", url)
	return nil
}

// ParseDestination turns a configured chat reference into a Message target.
// Numeric values are chat ids, anything else is a channel username.
func ParseDestination(raw string) Message {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Message{ChatID: id}
	}
	if raw != "" && !strings.HasPrefix(raw, "@") {
		raw = "@" + raw
	}
	return Message{ChannelUsername: raw}
}

func destination(m Message) string {
	if m.ChannelUsername != "" {
		return m.ChannelUsername
	}
	return strconv.FormatInt(m.ChatID, 10)
}
