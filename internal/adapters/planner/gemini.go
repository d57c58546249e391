package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch-planner-service/internal/platform/httpx"
	"dispatch-planner-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

// The prompt budget accepted by the generation endpoint. Longer prompts are
// truncated with a marker rather than rejected.
const maxPromptChars = 30000

// Fixed generation parameters. Low temperature keeps the itinerary JSON
// stable across runs with identical prompts.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     0.2,
		MaxOutputTokens: 4096,
		TopP:            0.8,
		TopK:            40,
	}
}

// GeminiPlanGenerator implements PlanGenerator against the Gemini
// generateContent endpoint. Safe for concurrent use.
type GeminiPlanGenerator struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
	config  GenerationConfig
}

func NewGeminiPlanGenerator(apiKey, model string, config GenerationConfig) (*GeminiPlanGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiPlanGenerator{
		session: &http.Client{Timeout: 120 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com",
		model:   model,
		config:  config,
	}, nil
}

// WithBaseURL points the generator at a different endpoint. Used in tests.
func (g *GeminiPlanGenerator) WithBaseURL(base string) *GeminiPlanGenerator {
	g.baseURL = strings.TrimRight(base, "/")
	return g
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GeneratePlan sends the prompt and returns the raw response text.
// An empty response is an error: the reconciler has nothing to work with.
func (g *GeminiPlanGenerator) GeneratePlan(ctx context.Context, prompt string) (_ string, err error) {
	defer obs.Time(ctx, "planner.GeneratePlan")(&err)

	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("generate plan: prompt is empty")
	}

	if runes := []rune(prompt); len(runes) > maxPromptChars {
		zerolog.Ctx(ctx).Warn().
			Int("chars", len(runes)).
			Msg("prompt exceeds budget, truncating")
		prompt = string(runes[:maxPromptChars]) + "..."
	}

	reqBody := generateRequest{
		Contents:         []content{{Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: g.config,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("generate plan: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		g.baseURL, g.model, g.apiKey,
	)

	makeReq := func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	}

	resp, err := httpx.DoWithRetry(ctx, g.session, makeReq)
	if err != nil {
		return "", fmt.Errorf("generate plan: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("generate plan: decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 {
		return "", errors.New("generate plan: response has no candidates")
	}

	var sb strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("generate plan: empty response text")
	}

	return text, nil
}
