package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, text string, capture *generateRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGeneratePlanReturnsText(t *testing.T) {
	var got generateRequest
	srv := newTestServer(t, "サマリー\n---\n[]", &got)
	defer srv.Close()

	g, err := NewGeminiPlanGenerator("key", "gemini-1.5-flash", DefaultGenerationConfig())
	require.NoError(t, err)
	g.WithBaseURL(srv.URL)

	text, err := g.GeneratePlan(context.Background(), "計画してください")
	require.NoError(t, err)
	assert.Equal(t, "サマリー\n---\n[]", text)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "計画してください", got.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.2, got.GenerationConfig.Temperature)
	assert.Equal(t, 4096, got.GenerationConfig.MaxOutputTokens)
}

func TestGeneratePlanTruncatesLongPrompts(t *testing.T) {
	var got generateRequest
	srv := newTestServer(t, "ok", &got)
	defer srv.Close()

	g, err := NewGeminiPlanGenerator("key", "", DefaultGenerationConfig())
	require.NoError(t, err)
	g.WithBaseURL(srv.URL)

	long := strings.Repeat("あ", maxPromptChars+500)
	_, err = g.GeneratePlan(context.Background(), long)
	require.NoError(t, err)

	sent := []rune(got.Contents[0].Parts[0].Text)
	assert.Len(t, sent, maxPromptChars+3)
	assert.True(t, strings.HasSuffix(string(sent), "..."))
}

func TestGeneratePlanEmptyResponseIsFatal(t *testing.T) {
	srv := newTestServer(t, "   ", nil)
	defer srv.Close()

	g, err := NewGeminiPlanGenerator("key", "", DefaultGenerationConfig())
	require.NoError(t, err)
	g.WithBaseURL(srv.URL)

	_, err = g.GeneratePlan(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
