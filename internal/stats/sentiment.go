package stats

import "strings"

// Sentiment is the display classification of an insight's overall sentiment.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	// SentimentNeutral covers both "mixed" and "neutral" backend labels;
	// they render identically.
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUnknown  Sentiment = "unknown"
)

// ClassifySentiment maps a backend sentiment label onto the display buckets.
// The match is case-insensitive and total: anything unrecognized, including
// an empty label, classifies as unknown.
func ClassifySentiment(label string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive":
		return SentimentPositive
	case "mixed", "neutral":
		return SentimentNeutral
	case "negative":
		return SentimentNegative
	default:
		return SentimentUnknown
	}
}
