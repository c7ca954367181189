package types

import "time"

// NewsItem is the top result of one news fetch.
type NewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IncomingMessage is the part of a telegram message the bot acts on.
type IncomingMessage struct {
	SenderID   int64     `json:"sender_id"`
	ChatID     int64     `json:"chat_id"`
	MessageID  int       `json:"message_id"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

type Command int

const (
	CommandPlainText Command = iota
	CommandNews
	CommandStats
)

func (c Command) String() string {
	switch c {
	case CommandNews:
		return "news"
	case CommandStats:
		return "stats"
	default:
		return "text"
	}
}
