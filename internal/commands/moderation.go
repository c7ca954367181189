package commands

import (
	"cryptonews-telegram-bot/lib/helpers"
)

var (
	// questionKeywords get a clarifying question in reply.
	questionKeywords = []string{
		"mining", "review", "currency", "where to buy",
		"майнинг", "обзор", "валюта", "где купить",
	}

	blockedTerms = []string{"casino", "казино"}
	spamLiterals = []string{"777"}
)

// NeedsClarification reports whether a plain text message asks something the
// bot answers with a follow-up question.
func NeedsClarification(text string) bool {
	return helpers.ContainsAny(helpers.Normalize(text), questionKeywords)
}

// IsSpam reports whether a message must be deleted.
func IsSpam(text string) bool {
	normalized := helpers.Normalize(text)
	return helpers.ContainsAny(normalized, blockedTerms) || helpers.ContainsAny(normalized, spamLiterals)
}
