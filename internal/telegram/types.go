package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// API is the part of tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetWebhookInfo() (tgbotapi.WebhookInfo, error)
}

// BotConfig configuration of the bot
type BotConfig struct {
	Token string
	Debug bool
}

// Bot telegram interaction client
type Bot struct {
	API      API
	Config   BotConfig
	Username string
}

// Message a telegram message struct. ChannelUsername takes precedence over
// ChatID when set.
type Message struct {
	ChatID          int64
	ChannelUsername string
	ReplyTo         int
	Text            string
	DisablePreview  bool
}

// Result is the outcome of one outbound call.
type Result struct {
	MessageID int
	Err       error
}

func (r Result) Sent() bool {
	return r.Err == nil
}

func Sent(messageID int) Result {
	return Result{MessageID: messageID}
}

func Failed(err error) Result {
	return Result{Err: err}
}
