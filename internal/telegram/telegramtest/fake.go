// Package telegramtest provides an in-memory telegram.API for tests.
package telegramtest

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FakeAPI records every call. SendErr and RequestErr, when set, are
// returned by the matching method.
type FakeAPI struct {
	mu         sync.Mutex
	sent       []tgbotapi.MessageConfig
	requests   []tgbotapi.Chattable
	nextID     int
	SendErr    error
	RequestErr error
	Info       tgbotapi.WebhookInfo
}

func (f *FakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SendErr != nil {
		return tgbotapi.Message{}, f.SendErr
	}

	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *FakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, c)
	if f.RequestErr != nil {
		return nil, f.RequestErr
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *FakeAPI) GetWebhookInfo() (tgbotapi.WebhookInfo, error) {
	return f.Info, nil
}

// Sent returns the messages sent so far.
func (f *FakeAPI) Sent() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

// Requests returns every Request call, failed ones included.
func (f *FakeAPI) Requests() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), f.requests...)
}

// Deletes returns the delete requests made so far.
func (f *FakeAPI) Deletes() []tgbotapi.DeleteMessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []tgbotapi.DeleteMessageConfig
	for _, r := range f.requests {
		if d, ok := r.(tgbotapi.DeleteMessageConfig); ok {
			out = append(out, d)
		}
	}
	return out
}
