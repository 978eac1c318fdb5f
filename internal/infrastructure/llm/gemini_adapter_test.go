package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsridhar11/mbot123/internal/domain"
)

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *GeminiAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiAdapter(domain.LLMConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	})
}

func TestGeminiAdapter_SendTurn(t *testing.T) {
	var captured geminiRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateResponse("Rest and drink fluids.")))
	})

	history := []domain.Message{
		domain.NewUserMessage("I feel feverish"),
		domain.NewModelMessage("Do you have a cough?"),
	}
	reply, err := adapter.SendTurn(context.Background(), history, "Yes, a dry cough")
	require.NoError(t, err)
	assert.Equal(t, "Rest and drink fluids.", reply)

	// History plus the new user turn, in order.
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, domain.RoleUser, captured.Contents[0].Role)
	assert.Equal(t, domain.RoleModel, captured.Contents[1].Role)
	assert.Equal(t, domain.RoleUser, captured.Contents[2].Role)
	assert.Equal(t, "Yes, a dry cough", captured.Contents[2].Parts[0].Text)

	require.NotNil(t, captured.SystemInstruction)
	assert.Contains(t, captured.SystemInstruction.Parts[0].Text, "medical assistant")

	require.NotNil(t, captured.GenerationConfig)
	assert.Equal(t, 0.7, captured.GenerationConfig.Temperature)
	assert.Equal(t, float64(1), captured.GenerationConfig.TopP)
	assert.Equal(t, 1, captured.GenerationConfig.TopK)
	assert.Equal(t, 2048, captured.GenerationConfig.MaxOutputTokens)
}

func TestGeminiAdapter_SummarizeTrimsWhitespace(t *testing.T) {
	var captured geminiRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(candidateResponse("\n  Symptoms Mentioned:\n- fever\n  ")))
	})

	note, err := adapter.Summarize(context.Background(), "I feel feverish", "Sounds like a cold")
	require.NoError(t, err)
	assert.Equal(t, "Symptoms Mentioned:\n- fever", note)

	// The summary call is historyless: one user content carrying the prompt.
	require.Len(t, captured.Contents, 1)
	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "User: I feel feverish")
	assert.Contains(t, prompt, "Assistant: Sounds like a cold")
	assert.Contains(t, prompt, "Recommended Actions")
}

func TestGeminiAdapter_APIErrorEnvelope(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := adapter.SendTurn(context.Background(), nil, "hello")

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Contains(t, gwErr.Error(), "Quota exceeded")
}

func TestGeminiAdapter_EmptyCandidates(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := adapter.SendTurn(context.Background(), nil, "hello")

	var gwErr *domain.GatewayError
	require.ErrorAs(t, err, &gwErr)
}

func TestGeminiAdapter_JoinsMultipleParts(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"first "},{"text":"second"}]}}]}`))
	})

	reply, err := adapter.SendTurn(context.Background(), nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, "first second", reply)
}

func TestNewGateway_Factory(t *testing.T) {
	gw, err := NewGateway(domain.LLMConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, &MockGateway{}, gw)

	gw, err = NewGateway(domain.LLMConfig{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiAdapter{}, gw)

	_, err = NewGateway(domain.LLMConfig{Provider: "openai"})
	assert.Error(t, err)
}
