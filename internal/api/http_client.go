package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type httpClient struct {
	cfg    Config
	client *http.Client
}

func newHTTPClient(cfg Config) *httpClient {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	return &httpClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

func (c *httpClient) ListSurveys(ctx context.Context, userID string) ([]Survey, error) {
	const op = "list surveys"

	params := url.Values{}
	params.Set("user_id", userID)

	var result SurveysResponse
	if err := c.getJSON(ctx, op, "/surveys", params, &result); err != nil {
		return nil, err
	}

	surveys := make([]Survey, 0, len(result.Surveys))
	for _, dto := range result.Surveys {
		surveys = append(surveys, MapSurvey(dto))
	}

	log.Debug().Str("user", userID).Int("count", len(surveys)).Msg("Fetched survey list")
	return surveys, nil
}

func (c *httpClient) ListInsights(ctx context.Context, userID string) ([]Insight, error) {
	const op = "list insights"

	params := url.Values{}
	params.Set("user_id", userID)

	var result InsightsResponse
	if err := c.getJSON(ctx, op, "/insights", params, &result); err != nil {
		return nil, err
	}

	insights := make([]Insight, 0, len(result.Insights))
	for _, dto := range result.Insights {
		insights = append(insights, MapInsight(dto))
	}

	log.Debug().Str("user", userID).Int("count", len(insights)).Msg("Fetched insight list")
	return insights, nil
}

// ListChartURLs degrades to an empty slice on any failure. Chart images are
// rendered lazily by the backend and routinely lag behind insights, so a
// missing or broken response is an expected condition, not an error.
func (c *httpClient) ListChartURLs(ctx context.Context, userID, uploadID string) []string {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("upload_id", uploadID)

	var result ChartURLsResponse
	if err := c.getJSON(ctx, "list chart urls", "/chart-urls", params, &result); err != nil {
		log.Debug().Err(err).Str("upload", uploadID).Msg("Chart URL fetch degraded to empty")
		return nil
	}

	return result.ChartURLs
}

func (c *httpClient) Authenticate(ctx context.Context, mode AuthMode, email, password string) (*AuthResult, error) {
	op := string(mode)

	body, err := json.Marshal(AuthRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	endpoint := c.cfg.BaseURL + "/" + string(mode)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// The backend answers 401 with a message body for bad credentials; that
	// is a verdict, not a transport problem, so decode it either way.
	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &BackendError{Op: op, Status: resp.StatusCode}
		}
		return nil, &MalformedResponseError{Op: op, Err: err}
	}

	success := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if mode == ModeLogin {
		success = success && result.UserID != ""
	}

	log.Info().Str("mode", op).Bool("success", success).Msg("Authentication attempt")
	return &AuthResult{
		Success: success,
		UserID:  result.UserID,
		Message: result.Message,
	}, nil
}

func (c *httpClient) Upload(ctx context.Context, email, filename string, content []byte) (string, error) {
	const op = "upload"

	payload := UploadRequest{
		Email:    email,
		Filename: filename,
		File:     base64.StdEncoding.EncodeToString(content),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Info().Str("filename", filename).Int("bytes", len(content)).Msg("Uploading survey file")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BackendError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &MalformedResponseError{Op: op, Err: err}
	}

	return result.Message, nil
}

func (c *httpClient) UserCount(ctx context.Context) (int, error) {
	var result UsersResponse
	if err := c.getJSON(ctx, "user count", "/users", nil, &result); err != nil {
		return 0, err
	}
	return result.UserCount, nil
}

func (c *httpClient) LookupUser(ctx context.Context, email string) (*User, error) {
	const op = "lookup user"

	params := url.Values{}
	params.Set("email", email)

	var dto UserDTO
	if err := c.getJSON(ctx, op, "/users", params, &dto); err != nil {
		return nil, err
	}

	if dto.UserID == "" && dto.Email == "" {
		return nil, &BackendError{Op: op, Status: http.StatusNotFound, Message: "user not found"}
	}

	return &User{
		UserID:      dto.UserID,
		Email:       dto.Email,
		CreatedAt:   dto.CreatedAt,
		UploadCount: dto.UploadCount,
	}, nil
}

// getJSON issues a GET and decodes the 2xx body into out, mapping failures
// onto the client error taxonomy.
func (c *httpClient) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	endpoint := c.cfg.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &BackendError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Op: op, Err: err}
	}

	return nil
}

// readErrorMessage pulls a human-readable message out of an error body.
// Backend errors arrive as {"error": ...} or {"message": ...}.
func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	return strings.TrimSpace(string(body))
}
