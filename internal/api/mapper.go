package api

import "strings"

// MapSurvey transforms a wire survey record into a domain Survey.
func MapSurvey(dto SurveyDTO) Survey {
	survey := Survey{
		UploadID: dto.UploadID,
		Status:   normalizeStatus(dto.Status),
	}

	if t, err := ParseTime(dto.Timestamp); err == nil {
		survey.Uploaded = t
	}

	if dto.AnalyzedAt != "" {
		if t, err := ParseTime(dto.AnalyzedAt); err == nil {
			survey.AnalyzedAt = &t
		}
	}

	return survey
}

// MapInsight transforms a wire insight record into a domain Insight.
func MapInsight(dto InsightDTO) Insight {
	insight := Insight{
		UploadID:         dto.UploadID,
		AvgSatisfaction:  dto.AvgSatisfaction,
		ResponseCount:    dto.ResponseCount,
		OverallSentiment: dto.OverallSentiment,
		PainPoints:       dto.PainPoints,
		PositiveAspects:  dto.PositiveAspects,
		TopInsights:      dto.TopInsights,
	}

	if len(dto.TopicSentiment) > 0 {
		insight.TopicSentiment = make(map[string]TopicSentiment, len(dto.TopicSentiment))
		for topic, ts := range dto.TopicSentiment {
			insight.TopicSentiment[topic] = TopicSentiment{
				AvgRating:     ts.AvgRating,
				PositiveCount: ts.PositiveCount,
				NegativeCount: ts.NegativeCount,
			}
		}
	}

	return insight
}

// normalizeStatus maps wire status strings onto the known enum. Unknown
// values are treated as raw so they never read as terminal.
func normalizeStatus(s string) SurveyStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "analyzed", "completed":
		return StatusAnalyzed
	case "processing":
		return StatusProcessing
	default:
		return StatusRaw
	}
}
