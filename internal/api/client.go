package api

import (
	"context"
	"time"
)

// SurveyStatus is the backend-owned processing state of an uploaded survey.
// Transitions are monotonic: raw -> processing -> analyzed.
type SurveyStatus string

const (
	StatusRaw        SurveyStatus = "raw"
	StatusProcessing SurveyStatus = "processing"
	StatusAnalyzed   SurveyStatus = "analyzed"
)

// Terminal reports whether no further backend transitions are expected.
func (s SurveyStatus) Terminal() bool {
	return s == StatusAnalyzed
}

// Survey is one uploaded feedback dataset. The client only ever reads
// snapshots; all mutation happens server-side.
type Survey struct {
	UploadID   string
	Status     SurveyStatus
	Uploaded   time.Time
	AnalyzedAt *time.Time
}

// TopicSentiment aggregates per-topic ratings within one insight.
type TopicSentiment struct {
	AvgRating     float64
	PositiveCount int
	NegativeCount int
}

// Insight is the AI-derived analysis result for one survey. AvgSatisfaction
// stays a pointer so "no score yet" is distinguishable from a genuine zero.
type Insight struct {
	UploadID         string
	AvgSatisfaction  *float64
	ResponseCount    int
	OverallSentiment string
	PainPoints       []string
	PositiveAspects  []string
	TopInsights      []string
	TopicSentiment   map[string]TopicSentiment
}

// AuthMode selects between the two authentication endpoints.
type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// AuthResult carries the backend's verdict on a login or register attempt.
// Message is passed through verbatim for display.
type AuthResult struct {
	Success bool
	UserID  string
	Message string
}

// User is a registered account as returned by the users endpoint.
type User struct {
	UserID      string
	Email       string
	CreatedAt   string
	UploadCount int
}

// Client is the interface for talking to the SurveySynth backend. All list
// operations are read-only and idempotent; Authenticate and Upload are the
// only writes.
type Client interface {
	ListSurveys(ctx context.Context, userID string) ([]Survey, error)
	ListInsights(ctx context.Context, userID string) ([]Insight, error)
	// ListChartURLs never fails: any transport, status or decode problem
	// degrades to an empty slice. Charts are decorative and must not block
	// the rest of a fetch cycle.
	ListChartURLs(ctx context.Context, userID, uploadID string) []string
	Authenticate(ctx context.Context, mode AuthMode, email, password string) (*AuthResult, error)
	Upload(ctx context.Context, email, filename string, content []byte) (string, error)
	UserCount(ctx context.Context) (int, error)
	LookupUser(ctx context.Context, email string) (*User, error)
}

// Config holds the connection settings for the backend API.
type Config struct {
	BaseURL string

	// Per-request deadline. The backend has no timeout of its own; without
	// this a hung fetch would stall a whole polling cycle.
	RequestTimeout time.Duration
}

// NewClient creates a new backend client from the provided configuration.
func NewClient(cfg Config) Client {
	return newHTTPClient(cfg)
}
