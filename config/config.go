package config

import (
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DefaultNewsChatID is the channel scheduled news goes to.
	DefaultNewsChatID = "@cryptonews_digest"
	// DefaultAdminIDs are the telegram user ids allowed to run /stats.
	DefaultAdminIDs = "123456789"
	// DefaultPromoText is appended to every news post.
	DefaultPromoText = "💎 Trade BTC, ETH and USDT with low fees: https://t.me/cryptonews_digest_exchange"
	// DefaultNewsEndpoint is the CryptoPanic posts API.
	DefaultNewsEndpoint = "https://cryptopanic.com/api/v1/posts/"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("news_api_key", "NEWS_API_KEY")
		viper.BindEnv("news_endpoint", "NEWS_ENDPOINT")
		viper.BindEnv("webhook_url", "WEBHOOK_URL")
		viper.BindEnv("port", "PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("log_level", "LOG_LEVEL")
		viper.BindEnv("lang", "BOT_LANG")
		viper.BindEnv("news_chat_id", "NEWS_CHAT_ID")
		viper.BindEnv("news_interval_hours", "NEWS_INTERVAL_HOURS")
		viper.BindEnv("admin_ids", "ADMIN_IDS")
		viper.BindEnv("promo_text", "PROMO_TEXT")

		viper.SetDefault("news_endpoint", DefaultNewsEndpoint)
		viper.SetDefault("port", 10000)
		viper.SetDefault("debug", false)
		viper.SetDefault("log_level", "info")
		viper.SetDefault("lang", "en")
		viper.SetDefault("news_chat_id", DefaultNewsChatID)
		viper.SetDefault("news_interval_hours", 3)
		viper.SetDefault("admin_ids", DefaultAdminIDs)
		viper.SetDefault("promo_text", DefaultPromoText)
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}

// GetInt64Slice reads a comma or space separated list of ids. Entries that
// are not integers are logged and skipped.
func GetInt64Slice(key string) []int64 {
	InitConfig()
	return ParseInt64List(viper.GetString(key))
}

func ParseInt64List(raw string) []int64 {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})

	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			log.Warnf("Skipping invalid id %q: %v", f, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
