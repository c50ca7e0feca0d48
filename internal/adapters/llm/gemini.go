package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petcare-route-service/internal/platform/obs"
)

// Failure modes of the external optimization endpoint. Configuration
// errors are detected before any network I/O. Callers must treat every
// error from this client as a signal to fall back; no retries happen at
// this layer.
var (
	ErrMissingAPIKey   = errors.New("gemini: api key is not configured")
	ErrInvalidEndpoint = errors.New("gemini: invalid endpoint")
	ErrInvalidResponse = errors.New("gemini: unexpected response shape")
	ErrEmptyPrompt     = errors.New("gemini: prompt must be non-empty")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	defaultTemperature     = 0.2
	defaultMaxOutputTokens = 2048
)

// GeminiClient implements the ModelClient port against the Gemini
// generateContent endpoint. The client performs exactly one request per
// call and holds no mutable state.
type GeminiClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewGeminiClient(apiKey, baseURL, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}

	return &GeminiClient{
		session: &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText issues one generateContent request and returns the raw
// reply text. A missing credential fails immediately without touching
// the network.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (_ string, err error) {
	defer obs.Time(ctx, "gemini.GenerateText")(&err)

	if strings.TrimSpace(g.apiKey) == "" {
		return "", ErrMissingAPIKey
	}
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidEndpoint
	}
	q := u.Query()
	q.Set("key", g.apiKey)
	u.RawQuery = q.Encode()

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxOutputTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidate text", ErrInvalidResponse)
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrInvalidResponse)
	}

	return text, nil
}
