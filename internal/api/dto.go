package api

import "time"

// SurveysResponse is the top-level container for the surveys endpoint.
type SurveysResponse struct {
	Surveys []SurveyDTO `json:"surveys"`
}

// SurveyDTO represents a single survey record on the wire.
type SurveyDTO struct {
	UploadID   string `json:"upload_id"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	AnalyzedAt string `json:"analyzed_at,omitempty"`
}

// InsightsResponse is the top-level container for the insights endpoint.
type InsightsResponse struct {
	Insights []InsightDTO `json:"insights"`
}

// InsightDTO represents one analysis record on the wire. AvgSatisfaction is a
// pointer because the backend omits it until the analysis pipeline has scored
// the upload.
type InsightDTO struct {
	UploadID         string                       `json:"upload_id"`
	AvgSatisfaction  *float64                     `json:"avg_satisfaction,omitempty"`
	ResponseCount    int                          `json:"response_count"`
	OverallSentiment string                       `json:"overall_sentiment,omitempty"`
	PainPoints       []string                     `json:"pain_points,omitempty"`
	PositiveAspects  []string                     `json:"positive_aspects,omitempty"`
	TopInsights      []string                     `json:"top_insights,omitempty"`
	TopicSentiment   map[string]TopicSentimentDTO `json:"topic_sentiment_map,omitempty"`
}

// TopicSentimentDTO is the per-topic rating block inside an insight.
type TopicSentimentDTO struct {
	AvgRating     float64 `json:"avg_rating"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
}

// ChartURLsResponse is the container for the chart-urls endpoint.
type ChartURLsResponse struct {
	ChartURLs []string `json:"chart_urls"`
}

// AuthRequest is the body for both the login and register endpoints.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse covers login, register and error bodies alike; only Message is
// guaranteed to be present.
type AuthResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// UploadRequest carries a survey file base64-encoded inside the JSON body.
// The transport is JSON-only, so binary content travels as text.
type UploadRequest struct {
	Email    string `json:"email"`
	Filename string `json:"filename"`
	File     string `json:"file"`
}

// UploadResponse is the body returned by the upload endpoint.
type UploadResponse struct {
	Message string `json:"message"`
}

// UsersResponse is the container for the users endpoint without a filter.
type UsersResponse struct {
	Users     []UserDTO `json:"users"`
	UserCount int       `json:"user_count"`
}

// UserDTO is a single account record on the wire.
type UserDTO struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
	UploadCount int    `json:"upload_count"`
}

// ParseTime is a helper for the backend's UTC timestamp format.
func ParseTime(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05Z", s)
}
