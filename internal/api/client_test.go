package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) Client {
	return NewClient(Config{BaseURL: url, RequestTimeout: 2 * time.Second})
}

func TestListSurveys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/surveys" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("user_id = %q, want u1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"surveys": [
			{"upload_id": "A", "status": "analyzed", "timestamp": "2025-06-01T10:00:00Z", "analyzed_at": "2025-06-01T10:05:00Z"},
			{"upload_id": "B", "status": "processing", "timestamp": "2025-06-02T11:30:00Z"}
		]}`))
	}))
	defer srv.Close()

	surveys, err := newTestClient(srv.URL).ListSurveys(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListSurveys failed: %v", err)
	}
	if len(surveys) != 2 {
		t.Fatalf("got %d surveys, want 2", len(surveys))
	}
	if surveys[0].Status != StatusAnalyzed {
		t.Errorf("survey A status = %q, want analyzed", surveys[0].Status)
	}
	if surveys[0].AnalyzedAt == nil {
		t.Error("survey A missing AnalyzedAt")
	}
	if surveys[1].AnalyzedAt != nil {
		t.Error("survey B should have nil AnalyzedAt")
	}
	if surveys[1].Uploaded.IsZero() {
		t.Error("survey B timestamp not parsed")
	}
}

func TestListSurveys_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "table unavailable"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListSurveys(context.Background(), "u1")

	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("got %T (%v), want *BackendError", err, err)
	}
	if backendErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", backendErr.Status)
	}
	if backendErr.Message != "table unavailable" {
		t.Errorf("message = %q, want backend error text", backendErr.Message)
	}
}

func TestListSurveys_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).ListSurveys(context.Background(), "u1")

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("got %T (%v), want *NetworkError", err, err)
	}
}

func TestListSurveys_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListSurveys(context.Background(), "u1")

	var malformedErr *MalformedResponseError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("got %T (%v), want *MalformedResponseError", err, err)
	}
}

func TestListInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"insights": [{
			"upload_id": "A",
			"avg_satisfaction": 4.2,
			"response_count": 31,
			"overall_sentiment": "positive",
			"pain_points": ["slow grading"],
			"positive_aspects": ["great lectures"],
			"top_insights": ["satisfaction tracks grading speed"],
			"topic_sentiment_map": {
				"grading": {"avg_rating": 2.9, "positive_count": 4, "negative_count": 11}
			}
		}, {
			"upload_id": "B",
			"response_count": 5
		}]}`))
	}))
	defer srv.Close()

	insights, err := newTestClient(srv.URL).ListInsights(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListInsights failed: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2", len(insights))
	}

	a := insights[0]
	if a.AvgSatisfaction == nil || *a.AvgSatisfaction != 4.2 {
		t.Errorf("insight A satisfaction = %v, want 4.2", a.AvgSatisfaction)
	}
	if a.TopicSentiment["grading"].NegativeCount != 11 {
		t.Errorf("topic sentiment not mapped: %+v", a.TopicSentiment)
	}

	// Absent avg_satisfaction must stay nil, not become 0.
	if insights[1].AvgSatisfaction != nil {
		t.Errorf("insight B satisfaction = %v, want nil", insights[1].AvgSatisfaction)
	}
}

func TestListChartURLs_NeverFails(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"ServerError", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"NotFound", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "Not found"}`))
		}},
		{"MalformedBody", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`garbage`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			urls := newTestClient(srv.URL).ListChartURLs(context.Background(), "u1", "A")
			if len(urls) != 0 {
				t.Errorf("got %d urls, want empty on failure", len(urls))
			}
		})
	}
}

func TestListChartURLs_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	urls := newTestClient(srv.URL).ListChartURLs(context.Background(), "u1", "A")
	if len(urls) != 0 {
		t.Errorf("got %d urls, want empty on transport failure", len(urls))
	}
}

func TestListChartURLs_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("upload_id"); got != "A" {
			t.Errorf("upload_id = %q, want A", got)
		}
		w.Write([]byte(`{"chart_urls": ["http://x/1.png", "http://x/2.png"]}`))
	}))
	defer srv.Close()

	urls := newTestClient(srv.URL).ListChartURLs(context.Background(), "u1", "A")
	if len(urls) != 2 {
		t.Fatalf("got %d urls, want 2", len(urls))
	}
}

func TestAuthenticate_LoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Email != "a@b.c" || req.Password != "secret" {
			t.Errorf("credentials not forwarded: %+v", req)
		}
		w.Write([]byte(`{"message": "Login successful", "user_id": "u-42"}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Authenticate(context.Background(), ModeLogin, "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if !result.Success || result.UserID != "u-42" {
		t.Errorf("result = %+v, want success with user u-42", result)
	}
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Invalid credentials"}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Authenticate(context.Background(), ModeLogin, "a@b.c", "wrong")
	if err != nil {
		t.Fatalf("a 401 verdict is not an error: %v", err)
	}
	if result.Success {
		t.Error("login with bad credentials reported success")
	}
	if result.Message != "Invalid credentials" {
		t.Errorf("message = %q, want backend message verbatim", result.Message)
	}
}

func TestUpload_EncodesBase64(t *testing.T) {
	content := []byte{0x00, 0x01, 0xFF, 0xFE, 'a', 'b'}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req UploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(req.File)
		if err != nil {
			t.Fatalf("file field not base64: %v", err)
		}
		if string(decoded) != string(content) {
			t.Errorf("decoded content mismatch")
		}
		if req.Filename != "feedback.csv" {
			t.Errorf("filename = %q", req.Filename)
		}
		w.Write([]byte(`{"message": "Upload received"}`))
	}))
	defer srv.Close()

	message, err := newTestClient(srv.URL).Upload(context.Background(), "a@b.c", "feedback.csv", content)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if message != "Upload received" {
		t.Errorf("message = %q", message)
	}
}

func TestUserCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": [], "user_count": 7}`))
	}))
	defer srv.Close()

	count, err := newTestClient(srv.URL).UserCount(context.Background())
	if err != nil {
		t.Fatalf("UserCount failed: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}

func TestLookupUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("email"); got != "a@b.c" {
			t.Errorf("email = %q", got)
		}
		w.Write([]byte(`{"user_id": "u-42", "email": "a@b.c", "created_at": "2025-01-01T00:00:00Z", "upload_count": 3}`))
	}))
	defer srv.Close()

	user, err := newTestClient(srv.URL).LookupUser(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("LookupUser failed: %v", err)
	}
	if user.UserID != "u-42" || user.UploadCount != 3 {
		t.Errorf("user = %+v", user)
	}
}
