package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

func TestRenderSummaryCountsTodayAndWeek(t *testing.T) {
	s := NewStore(0)

	s.RecordMessage(1, now.Add(-1*time.Hour))
	s.RecordMessage(1, now.Add(-2*time.Hour))
	s.RecordMessage(2, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	// yesterday and the first day of the week window
	s.RecordMessage(3, time.Date(2024, 5, 9, 23, 59, 0, 0, time.UTC))
	s.RecordMessage(4, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC))
	// outside the window on both sides
	s.RecordMessage(5, time.Date(2024, 5, 3, 23, 59, 59, 0, time.UTC))
	s.RecordMessage(6, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC))

	summary := s.RenderSummary(now)

	assert.Contains(t, summary, "Messages today: 3\n")
	assert.Contains(t, summary, "Messages this week: 5\n")
	assert.Contains(t, summary, "Unique users today: 2\n")
	assert.Contains(t, summary, "Unique users this week: 4\n")
}

func TestRenderSummaryContainsAllMetrics(t *testing.T) {
	s := NewStore(DefaultRetention)
	s.IncrementAdsShown()
	s.IncrementAdsShown()
	s.IncrementReplies()
	s.RecordNewsPost(now.Add(-3 * time.Hour))

	summary := s.RenderSummary(now)

	for _, label := range []string{
		"Messages today: 0",
		"Messages this week: 0",
		"Unique users today: 0",
		"Unique users this week: 0",
		"Ads shown: 2",
		"Bot replies: 1",
		"News posts: 1",
		"Last news post: 3 hours ago",
	} {
		assert.Contains(t, summary, label)
	}
}

func TestRenderSummaryWithoutNews(t *testing.T) {
	s := NewStore(DefaultRetention)
	assert.Contains(t, s.RenderSummary(now), "Last news post: never")
}

func TestRenderSummaryIsIdempotent(t *testing.T) {
	s := NewStore(DefaultRetention)
	s.RecordMessage(1, now)
	s.RecordMessage(2, now.Add(-48*time.Hour))
	s.IncrementReplies()

	first := s.RenderSummary(now)
	second := s.RenderSummary(now)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, s.Snapshot().Messages)
}

func TestRenderSummaryUsesLocationOfNow(t *testing.T) {
	s := NewStore(0)
	loc := time.FixedZone("UTC+3", 3*60*60)

	// 22:30 UTC on May 9 is already May 10 in UTC+3
	s.RecordMessage(1, time.Date(2024, 5, 9, 22, 30, 0, 0, time.UTC))

	assert.Contains(t, s.RenderSummary(time.Date(2024, 5, 10, 12, 0, 0, 0, loc)), "Messages today: 1\n")
	assert.Contains(t, s.RenderSummary(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)), "Messages today: 0\n")
}

func TestRetentionPrunesOldMessages(t *testing.T) {
	s := NewStore(DefaultRetention)

	s.RecordMessage(1, now.Add(-10*24*time.Hour))
	s.RecordMessage(2, now.Add(-6*24*time.Hour))
	s.RecordMessage(3, now)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Messages)
	assert.Equal(t, 3, snap.UniqueUsers, "unique users are never pruned")
	assert.Contains(t, s.RenderSummary(now), "Messages this week: 2\n")
}

func TestRetentionDoesNotChangeWeeklyReport(t *testing.T) {
	pruned := NewStore(DefaultRetention)
	full := NewStore(0)

	for i := 0; i < 30*24; i++ {
		at := now.Add(-time.Duration(30*24-i) * time.Hour)
		pruned.RecordMessage(int64(i%7), at)
		full.RecordMessage(int64(i%7), at)
	}

	assert.Equal(t, full.RenderSummary(now), pruned.RenderSummary(now))
	assert.Less(t, pruned.MessageLogSize(), full.MessageLogSize())
}

func TestSnapshot(t *testing.T) {
	s := NewStore(DefaultRetention)
	s.RecordMessage(7, now)
	s.RecordMessage(7, now)
	s.RecordNewsPost(now.Add(-time.Hour))
	s.RecordNewsPost(now)
	s.IncrementAdsShown()

	snap := s.Snapshot()
	assert.Equal(t, Snapshot{
		Messages:    2,
		UniqueUsers: 1,
		NewsPosts:   2,
		BotReplies:  0,
		AdsShown:    1,
		LastNewsAt:  now,
	}, snap)
}

func TestConcurrentWrites(t *testing.T) {
	s := NewStore(DefaultRetention)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.RecordMessage(id, now)
			s.IncrementReplies()
			s.IncrementAdsShown()
			s.RecordNewsPost(now)
		}(int64(i))
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Equal(t, 50, snap.Messages)
	assert.Equal(t, 50, snap.UniqueUsers)
	assert.Equal(t, 50, snap.BotReplies)
	assert.Equal(t, 50, snap.AdsShown)
	assert.Equal(t, 50, snap.NewsPosts)
}
