package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"surveysynth/internal/api"

	"github.com/google/uuid"
)

// Config controls the synthetic backend's behavior.
type Config struct {
	// Seed surveys created for every registered user.
	SeedSurveys int
	// Time a fresh upload spends in each non-terminal status before the
	// simulated analysis pipeline advances it.
	StageDelay time.Duration
	// Charts become available this long after a survey turns analyzed,
	// mimicking the real chart-rendering lag.
	ChartLag time.Duration
}

type account struct {
	userID   string
	password string
	created  time.Time
	uploads  int
}

type record struct {
	uploadID string
	userID   string
	created  time.Time
}

// Backend is an in-memory stand-in for the SurveySynth storage and analysis
// pipeline. Survey status is derived from elapsed time since upload, so
// clients observe the raw -> processing -> analyzed progression without any
// background workers.
type Backend struct {
	cfg Config

	mu       sync.Mutex
	accounts map[string]*account
	surveys  []record
}

func NewBackend(cfg Config) *Backend {
	if cfg.StageDelay == 0 {
		cfg.StageDelay = 15 * time.Second
	}
	if cfg.ChartLag == 0 {
		cfg.ChartLag = 10 * time.Second
	}
	return &Backend{
		cfg:      cfg,
		accounts: make(map[string]*account),
	}
}

// Register creates an account. Returns false when the email is taken.
func (b *Backend) Register(email, password string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[email]; exists {
		return false
	}

	acct := &account{
		userID:   uuid.NewString(),
		password: password,
		created:  time.Now().UTC(),
	}
	b.accounts[email] = acct

	// Seed a few already-aged surveys so dashboards have data immediately.
	for i := 0; i < b.cfg.SeedSurveys; i++ {
		age := time.Duration(i+2) * 2 * b.cfg.StageDelay
		b.surveys = append(b.surveys, record{
			uploadID: fmt.Sprintf("seed-%d", i+1),
			userID:   acct.userID,
			created:  time.Now().UTC().Add(-age),
		})
	}
	return true
}

// Login checks credentials and returns the account's user id.
func (b *Backend) Login(email, password string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[email]
	if !ok || acct.password != password {
		return "", false
	}
	return acct.userID, true
}

// Upload records a new survey for the account and returns its upload id.
func (b *Backend) Upload(email string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[email]
	if !ok {
		return "", false
	}

	acct.uploads++
	uploadID := fmt.Sprintf("%s-%d", acct.userID[:8], acct.uploads)
	b.surveys = append(b.surveys, record{
		uploadID: uploadID,
		userID:   acct.userID,
		created:  time.Now().UTC(),
	})
	return uploadID, true
}

// Surveys returns the wire records for one user, statuses derived from age.
func (b *Backend) Surveys(userID string) []api.SurveyDTO {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	out := make([]api.SurveyDTO, 0)
	for _, rec := range b.surveys {
		if rec.userID != userID {
			continue
		}
		dto := api.SurveyDTO{
			UploadID:  rec.uploadID,
			Status:    string(b.status(rec, now)),
			Timestamp: rec.created.Format("2006-01-02T15:04:05Z"),
		}
		if dto.Status == string(api.StatusAnalyzed) {
			dto.AnalyzedAt = rec.created.Add(2 * b.cfg.StageDelay).Format("2006-01-02T15:04:05Z")
		}
		out = append(out, dto)
	}
	return out
}

// Insights returns synthetic analysis results for the user's analyzed surveys.
func (b *Backend) Insights(userID string) []api.InsightDTO {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	out := make([]api.InsightDTO, 0)
	for _, rec := range b.surveys {
		if rec.userID != userID || b.status(rec, now) != api.StatusAnalyzed {
			continue
		}
		out = append(out, b.synthesizeInsight(rec))
	}
	return out
}

// ChartURLs returns chart links for one upload once the rendering lag passed.
func (b *Backend) ChartURLs(userID, uploadID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now().UTC()
	for _, rec := range b.surveys {
		if rec.userID != userID || rec.uploadID != uploadID {
			continue
		}
		if b.status(rec, now) != api.StatusAnalyzed {
			return nil
		}
		analyzedAt := rec.created.Add(2 * b.cfg.StageDelay)
		if now.Sub(analyzedAt) < b.cfg.ChartLag {
			return nil
		}
		return []string{
			fmt.Sprintf("http://localhost/charts/%s/satisfaction.png", uploadID),
			fmt.Sprintf("http://localhost/charts/%s/sentiment.png", uploadID),
			fmt.Sprintf("http://localhost/charts/%s/topics.png", uploadID),
		}
	}
	return nil
}

// UserCount returns the number of registered accounts.
func (b *Backend) UserCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.accounts)
}

// LookupUser returns the wire record for one account.
func (b *Backend) LookupUser(email string) (api.UserDTO, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[email]
	if !ok {
		return api.UserDTO{}, false
	}
	return api.UserDTO{
		UserID:      acct.userID,
		Email:       email,
		CreatedAt:   acct.created.Format("2006-01-02T15:04:05Z"),
		UploadCount: acct.uploads,
	}, true
}

func (b *Backend) status(rec record, now time.Time) api.SurveyStatus {
	age := now.Sub(rec.created)
	switch {
	case age < b.cfg.StageDelay:
		return api.StatusRaw
	case age < 2*b.cfg.StageDelay:
		return api.StatusProcessing
	default:
		return api.StatusAnalyzed
	}
}

func (b *Backend) synthesizeInsight(rec record) api.InsightDTO {
	// Deterministic per upload id so repeated polls see stable numbers.
	rng := rand.New(rand.NewSource(int64(hash(rec.uploadID))))

	score := 2.5 + rng.Float64()*2.5
	sentiment := "mixed"
	switch {
	case score >= 4.0:
		sentiment = "positive"
	case score < 3.0:
		sentiment = "negative"
	}

	return api.InsightDTO{
		UploadID:         rec.uploadID,
		AvgSatisfaction:  &score,
		ResponseCount:    20 + rng.Intn(180),
		OverallSentiment: sentiment,
		PainPoints:       []string{"Assignments pile up before exams", "Slow grading turnaround"},
		PositiveAspects:  []string{"Engaging lectures", "Responsive instructors"},
		TopInsights:      []string{"Satisfaction tracks grading speed"},
		TopicSentiment: map[string]api.TopicSentimentDTO{
			"grading": {
				AvgRating:     score - 0.5,
				PositiveCount: rng.Intn(30),
				NegativeCount: rng.Intn(20),
			},
			"lectures": {
				AvgRating:     score + 0.3,
				PositiveCount: rng.Intn(40),
				NegativeCount: rng.Intn(10),
			},
		},
	}
}

func hash(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}
