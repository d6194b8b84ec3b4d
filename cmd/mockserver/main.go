// mockserver serves a synthetic SurveySynth backend on localhost. Survey
// statuses advance over time (raw -> processing -> analyzed) so the client's
// polling behavior can be exercised without the real analysis pipeline.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"surveysynth/cmd/mockserver/engine"
	"surveysynth/internal/api"

	"github.com/gorilla/mux"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8700", "listen address")
	seed := flag.Int("seed", 3, "pre-aged surveys created per registered user")
	stage := flag.Duration("stage", 15*time.Second, "time spent in each non-terminal status")
	chartLag := flag.Duration("chart-lag", 10*time.Second, "chart availability lag after analysis")
	flag.Parse()

	backend := engine.NewBackend(engine.Config{
		SeedSurveys: *seed,
		StageDelay:  *stage,
		ChartLag:    *chartLag,
	})

	r := mux.NewRouter()
	r.HandleFunc("/register", authHandler(backend, true)).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler(backend, false)).Methods(http.MethodPost)
	r.HandleFunc("/upload", uploadHandler(backend)).Methods(http.MethodPost)
	r.HandleFunc("/surveys", surveysHandler(backend)).Methods(http.MethodGet)
	r.HandleFunc("/insights", insightsHandler(backend)).Methods(http.MethodGet)
	r.HandleFunc("/chart-urls", chartURLsHandler(backend)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/users", usersHandler(backend)).Methods(http.MethodGet)

	fmt.Printf("Mock SurveySynth backend listening on %s (stage delay %s)\n", *addr, *stage)
	if err := http.ListenAndServe(*addr, r); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func authHandler(backend *engine.Backend, register bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, api.AuthResponse{Message: "invalid request body"})
			return
		}

		if register {
			if !backend.Register(req.Email, req.Password) {
				writeJSON(w, http.StatusConflict, api.AuthResponse{Message: "Email already registered"})
				return
			}
			writeJSON(w, http.StatusOK, api.AuthResponse{Message: "User registered"})
			return
		}

		userID, ok := backend.Login(req.Email, req.Password)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, api.AuthResponse{Message: "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, api.AuthResponse{Message: "Login successful", UserID: userID})
	}
}

func uploadHandler(backend *engine.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.UploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, api.UploadResponse{Message: "invalid request body"})
			return
		}

		uploadID, ok := backend.Upload(req.Email)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, api.UploadResponse{Message: "Unknown account"})
			return
		}
		writeJSON(w, http.StatusOK, api.UploadResponse{
			Message: fmt.Sprintf("Upload received, processing started (upload %s)", uploadID),
		})
	}
}

func surveysHandler(backend *engine.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		writeJSON(w, http.StatusOK, api.SurveysResponse{Surveys: backend.Surveys(userID)})
	}
}

func insightsHandler(backend *engine.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		writeJSON(w, http.StatusOK, api.InsightsResponse{Insights: backend.Insights(userID)})
	}
}

func chartURLsHandler(backend *engine.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		uploadID := r.URL.Query().Get("upload_id")
		if userID == "" || uploadID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and upload_id are required"})
			return
		}
		urls := backend.ChartURLs(userID, uploadID)
		if urls == nil {
			urls = []string{}
		}
		writeJSON(w, http.StatusOK, api.ChartURLsResponse{ChartURLs: urls})
	}
}

func usersHandler(backend *engine.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if email := r.URL.Query().Get("email"); email != "" {
			user, ok := backend.LookupUser(email)
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
				return
			}
			writeJSON(w, http.StatusOK, user)
			return
		}
		writeJSON(w, http.StatusOK, api.UsersResponse{UserCount: backend.UserCount()})
	}
}
