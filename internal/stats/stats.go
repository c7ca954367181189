package stats

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cryptonews-telegram-bot/lib/helpers"
	"cryptonews-telegram-bot/lib/translation"
)

// DefaultRetention keeps one day more than the weekly report needs.
const DefaultRetention = 8 * 24 * time.Hour

type messageRecord struct {
	userID int64
	at     time.Time
}

// Store holds process-wide counters and the recent message log.
type Store struct {
	mu          sync.Mutex
	retention   time.Duration
	messages    []messageRecord
	uniqueUsers map[int64]struct{}
	newsPosts   []time.Time
	botReplies  int
	adsShown    int
}

// Snapshot is a copy of the store counters.
type Snapshot struct {
	Messages    int
	UniqueUsers int
	NewsPosts   int
	BotReplies  int
	AdsShown    int
	LastNewsAt  time.Time
}

// NewStore creates a store that drops messages older than retention relative
// to the newest recorded message. A retention <= 0 keeps everything.
func NewStore(retention time.Duration) *Store {
	return &Store{
		retention:   retention,
		uniqueUsers: make(map[int64]struct{}),
	}
}

func (s *Store) RecordMessage(userID int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, messageRecord{userID: userID, at: at})
	s.uniqueUsers[userID] = struct{}{}
	s.prune(at)
}

// prune drops the leading messages that fell out of the retention window.
func (s *Store) prune(newest time.Time) {
	if s.retention <= 0 {
		return
	}

	cutoff := newest.Add(-s.retention)
	i := 0
	for i < len(s.messages) && s.messages[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.messages = append(s.messages[:0:0], s.messages[i:]...)
	}
}

func (s *Store) IncrementReplies() {
	s.mu.Lock()
	s.botReplies++
	s.mu.Unlock()
}

func (s *Store) IncrementAdsShown() {
	s.mu.Lock()
	s.adsShown++
	s.mu.Unlock()
}

func (s *Store) RecordNewsPost(at time.Time) {
	s.mu.Lock()
	s.newsPosts = append(s.newsPosts, at)
	s.mu.Unlock()
}

func (s *Store) UniqueUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uniqueUsers)
}

func (s *Store) MessageLogSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Messages:    len(s.messages),
		UniqueUsers: len(s.uniqueUsers),
		NewsPosts:   len(s.newsPosts),
		BotReplies:  s.botReplies,
		AdsShown:    s.adsShown,
	}
	if n := len(s.newsPosts); n > 0 {
		snap.LastNewsAt = s.newsPosts[n-1]
	}
	return snap
}

// RenderSummary builds the admin report as of now. Today is now's calendar
// date, the week is the seven dates ending on it, both in now's location.
func (s *Store) RenderSummary(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := helpers.StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)

	var todayCount, weekCount int
	todayUsers := make(map[int64]struct{})
	weekUsers := make(map[int64]struct{})

	for _, m := range s.messages {
		if m.at.Before(weekStart) || !m.at.Before(tomorrow) {
			continue
		}
		weekCount++
		weekUsers[m.userID] = struct{}{}

		if !m.at.Before(today) {
			todayCount++
			todayUsers[m.userID] = struct{}{}
		}
	}

	lastNews := translation.Translate("never")
	if n := len(s.newsPosts); n > 0 {
		lastNews = helpers.FormatSince(s.newsPosts[n-1], now)
	}

	var b strings.Builder
	b.WriteString(translation.Translate("📊 Bot statistics"))
	b.WriteString("\n\n")
	writeLine(&b, "Messages today", helpers.FormatCount(todayCount))
	writeLine(&b, "Messages this week", helpers.FormatCount(weekCount))
	writeLine(&b, "Unique users today", helpers.FormatCount(len(todayUsers)))
	writeLine(&b, "Unique users this week", helpers.FormatCount(len(weekUsers)))
	writeLine(&b, "Ads shown", helpers.FormatCount(s.adsShown))
	writeLine(&b, "Bot replies", helpers.FormatCount(s.botReplies))
	writeLine(&b, "News posts", helpers.FormatCount(len(s.newsPosts)))
	writeLine(&b, "Last news post", lastNews)

	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s: %s\n", translation.Translate(label), value)
}
