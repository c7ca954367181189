package scheduler

import (
	"context"
	"sync"
	"time"

	"cryptonews-telegram-bot/internal/telegram"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

// PollInterval is how often the wall clock is checked.
const PollInterval = 60 * time.Second

type Broadcaster interface {
	BroadcastNews(ctx context.Context) telegram.Result
}

// Scheduler triggers a news broadcast at minute zero of every hour divisible
// by the interval.
type Scheduler struct {
	broadcaster   Broadcaster
	clock         clockwork.Clock
	intervalHours int

	mu        sync.Mutex
	lastFired time.Time
}

func New(b Broadcaster, clock clockwork.Clock, intervalHours int) *Scheduler {
	if intervalHours < 1 {
		intervalHours = 1
	}
	return &Scheduler{
		broadcaster:   b,
		clock:         clock,
		intervalHours: intervalHours,
	}
}

// ShouldFire reports whether t is a qualifying minute.
func ShouldFire(t time.Time, intervalHours int) bool {
	if intervalHours < 1 {
		intervalHours = 1
	}
	return t.Minute() == 0 && t.Hour()%intervalHours == 0
}

// Run checks immediately and then once per PollInterval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(PollInterval)
	defer ticker.Stop()

	log.Infof("🚀 News scheduler started, posting every %d hours", s.intervalHours)

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("News scheduler stopped")
			return
		case <-ticker.Chan():
			s.Tick(ctx)
		}
	}
}

// Tick broadcasts if the current minute qualifies and has not fired yet.
// It reports whether a broadcast was attempted.
func (s *Scheduler) Tick(ctx context.Context) bool {
	now := s.clock.Now()
	if !ShouldFire(now, s.intervalHours) {
		return false
	}

	minute := now.Truncate(time.Minute)

	s.mu.Lock()
	if minute.Equal(s.lastFired) {
		s.mu.Unlock()
		return false
	}
	s.lastFired = minute
	s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("🔥 Panic recovered in news scheduler: %v", r)
		}
	}()

	log.Debugf("🔄 Broadcasting news for %s", minute.Format("15:04"))
	s.broadcaster.BroadcastNews(ctx)
	return true
}
