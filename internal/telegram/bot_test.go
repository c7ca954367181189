package telegram

import (
	"testing"

	"cryptonews-telegram-bot/internal/telegram/telegramtest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageToChat(t *testing.T) {
	api := &telegramtest.FakeAPI{}
	bot := NewBotWithAPI(api, BotConfig{})

	res := bot.SendMessage(Message{ChatID: 42, ReplyTo: 7, Text: "hello"})

	require.True(t, res.Sent())
	assert.Equal(t, 1, res.MessageID)

	sent := api.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(42), sent[0].ChatID)
	assert.Equal(t, 7, sent[0].ReplyToMessageID)
	assert.Equal(t, "hello", sent[0].Text)
	assert.False(t, sent[0].DisableWebPagePreview)
}

func TestSendMessageToChannel(t *testing.T) {
	api := &telegramtest.FakeAPI{}
	bot := NewBotWithAPI(api, BotConfig{})

	res := bot.SendMessage(Message{ChannelUsername: "@news", Text: "post", DisablePreview: true})

	require.True(t, res.Sent())
	sent := api.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "@news", sent[0].ChannelUsername)
	assert.True(t, sent[0].DisableWebPagePreview)
}

func TestSendMessageFailure(t *testing.T) {
	api := &telegramtest.FakeAPI{SendErr: errors.New("boom")}
	bot := NewBotWithAPI(api, BotConfig{})

	res := bot.SendMessage(Message{ChatID: 1, Text: "x"})

	assert.False(t, res.Sent())
	assert.Contains(t, res.Err.Error(), "boom")
	assert.Contains(t, res.Err.Error(), "1")
}

func TestDeleteMessage(t *testing.T) {
	api := &telegramtest.FakeAPI{}
	bot := NewBotWithAPI(api, BotConfig{})

	require.True(t, bot.DeleteMessage(5, 9).Sent())

	deletes := api.Deletes()
	require.Len(t, deletes, 1)
	assert.Equal(t, int64(5), deletes[0].ChatID)
	assert.Equal(t, 9, deletes[0].MessageID)

	api.RequestErr = errors.New("forbidden")
	assert.False(t, bot.DeleteMessage(5, 10).Sent())
}

func TestSetWebhook(t *testing.T) {
	api := &telegramtest.FakeAPI{Info: tgbotapi.WebhookInfo{LastErrorDate: 1, LastErrorMessage: "timeout"}}
	bot := NewBotWithAPI(api, BotConfig{})

	require.NoError(t, bot.SetWebhook("https://example.com/webhook"))

	reqs := api.Requests()
	require.Len(t, reqs, 2)
	assert.IsType(t, tgbotapi.DeleteWebhookConfig{}, reqs[0])
	hook, ok := reqs[1].(tgbotapi.WebhookConfig)
	require.True(t, ok)
	assert.Equal(t, "example.com", hook.URL.Host)
}

func TestSetWebhookFailure(t *testing.T) {
	api := &telegramtest.FakeAPI{RequestErr: errors.New("unauthorized")}
	bot := NewBotWithAPI(api, BotConfig{})

	err := bot.SetWebhook("https://example.com/webhook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not remove webhook")
}

func TestParseDestination(t *testing.T) {
	assert.Equal(t, Message{ChatID: -1001234567890}, ParseDestination("-1001234567890"))
	assert.Equal(t, Message{ChannelUsername: "@news"}, ParseDestination("@news"))
	assert.Equal(t, Message{ChannelUsername: "@news"}, ParseDestination(" news "))
}
