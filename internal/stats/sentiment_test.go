package stats

import "testing"

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		label string
		want  Sentiment
	}{
		{"positive", SentimentPositive},
		{"Positive", SentimentPositive},
		{"POSITIVE", SentimentPositive},
		{"mixed", SentimentNeutral},
		{"neutral", SentimentNeutral},
		{"Mixed", SentimentNeutral},
		{"negative", SentimentNegative},
		{" negative ", SentimentNegative},
		{"", SentimentUnknown},
		{"ambivalent", SentimentUnknown},
		{"positive!", SentimentUnknown},
	}

	for _, tt := range tests {
		if got := ClassifySentiment(tt.label); got != tt.want {
			t.Errorf("ClassifySentiment(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
