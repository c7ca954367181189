package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt64List(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{name: "single", raw: "123456789", want: []int64{123456789}},
		{name: "comma separated", raw: "1,2,3", want: []int64{1, 2, 3}},
		{name: "mixed separators", raw: " 1, 2;3  4", want: []int64{1, 2, 3, 4}},
		{name: "invalid skipped", raw: "1,abc,-5", want: []int64{1, -5}},
		{name: "empty", raw: "", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt64List(tt.raw))
		})
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NEWS_INTERVAL_HOURS", "")

	assert.Equal(t, 10000, GetInt("port"))
	assert.Equal(t, 3, GetInt("news_interval_hours"))
	assert.Equal(t, DefaultNewsEndpoint, GetString("news_endpoint"))
	assert.Equal(t, []int64{123456789}, GetInt64Slice("admin_ids"))
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ADMIN_IDS", "42,43")
	t.Setenv("NEWS_INTERVAL_HOURS", "6")

	assert.Equal(t, []int64{42, 43}, GetInt64Slice("admin_ids"))
	assert.Equal(t, 6, GetInt("news_interval_hours"))
}
