package commands

import (
	"strings"

	"cryptonews-telegram-bot/internal/types"
	"cryptonews-telegram-bot/lib/helpers"
)

var (
	newsAliases  = []string{"/news", "/новости"}
	statsAliases = []string{"/stats", "/статистика"}
)

// ParseCommand maps the first word of text to a command. A "@botname" suffix
// is ignored so "/news@cryptonews_bot" works in groups.
func ParseCommand(text string) types.Command {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return types.CommandPlainText
	}

	word := helpers.Normalize(fields[0])
	if i := strings.Index(word, "@"); i > 0 {
		word = word[:i]
	}

	switch {
	case contains(newsAliases, word):
		return types.CommandNews
	case contains(statsAliases, word):
		return types.CommandStats
	}
	return types.CommandPlainText
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
