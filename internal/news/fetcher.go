package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptonews-telegram-bot/internal/metrics"
	"cryptonews-telegram-bot/internal/types"
	"cryptonews-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// FetchTimeout bounds a single news API call.
	FetchTimeout = 7 * time.Second

	noTitle = "No title"
)

// Currencies the news feed is filtered to.
var Currencies = []string{"BTC", "ETH", "USDT", "USDC"}

// StatusError is returned when the news API answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("news api returned status %d", e.Code)
}

type response struct {
	Results []struct {
		Title *string `json:"title"`
		URL   *string `json:"url"`
	} `json:"results"`
}

type Fetcher struct {
	endpoint string
	apiKey   string
	client   *http.Client
	metrics  *metrics.BotMetrics
}

func NewFetcher(endpoint, apiKey string, m *metrics.BotMetrics) *Fetcher {
	return &Fetcher{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: FetchTimeout,
		},
		metrics: m,
	}
}

func (f *Fetcher) requestURL() (string, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return "", errors.Wrapf(err, "invalid news endpoint %s", f.endpoint)
	}

	q := u.Query()
	q.Set("auth_token", f.apiKey)
	q.Set("public", "true")
	q.Set("currencies", strings.Join(Currencies, ","))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch returns the current news results in API order.
func (f *Fetcher) Fetch(ctx context.Context) ([]types.NewsItem, error) {
	apiURL, err := f.requestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not build news request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// url.Error carries the query string, which holds the api key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, errors.Wrap(err, "could not fetch news")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.Wrap(err, "could not parse news response")
	}

	items := make([]types.NewsItem, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		item := types.NewsItem{Title: noTitle}
		if r.Title != nil && *r.Title != "" {
			item.Title = *r.Title
		}
		if r.URL != nil {
			item.URL = *r.URL
		}
		items = append(items, item)
	}

	return items, nil
}

// FetchTopNews formats the first news item. Every failure is logged and
// turned into a postable text, so the result is always safe to send.
func (f *Fetcher) FetchTopNews(ctx context.Context) string {
	items, err := f.Fetch(ctx)

	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		f.countFetch("status")
		log.WithField("status", statusErr.Code).Errorf("News API error: %s", statusErr.Body)
		return translation.Translate("⚠️ Could not load news (HTTP %d)", statusErr.Code)
	case err != nil:
		f.countFetch("error")
		log.Errorf("News fetch failed: %v", err)
		return translation.Translate("⚠️ Could not load news: %s", err.Error())
	case len(items) == 0:
		f.countFetch("empty")
		return translation.Translate("No fresh news at the moment.")
	}

	f.countFetch("ok")
	return FormatItem(items[0])
}

func (f *Fetcher) countFetch(result string) {
	if f.metrics != nil {
		f.metrics.NewsFetches.WithLabelValues(result).Inc()
	}
}

func FormatItem(item types.NewsItem) string {
	return fmt.Sprintf("📰 %s\n%s", item.Title, item.URL)
}
