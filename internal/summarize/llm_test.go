package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgviz/orgviz/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLLM(url string) *LLMSummarizer {
	s := NewLLMSummarizer(LLMConfig{BaseURL: url, APIKey: "k", Model: "test-model"})
	s.retries = 0
	return s
}

func TestLLMSummarize(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "- Ship the index\n- Serve the queries\n\n"}}]}`)
	}))
	defer srv.Close()

	slot := &schema.SummarySlot{Description: "Rebuild search.", IntentionPI: "Ship v2.", MaxLines: 3}
	lines, err := newTestLLM(srv.URL).Summarize(context.Background(), slot)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ship the index", "Serve the queries"}, lines, "bullets and blanks stripped")
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Contains(t, gotReq.Messages[0].Content, "at most 3 short lines")
	assert.Contains(t, gotReq.Messages[1].Content, "Rebuild search.")
}

func TestLLMSummarizeErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestLLM(srv.URL).Summarize(context.Background(), &schema.SummarySlot{Description: "x", MaxLines: 3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices": []}`)
		}))
		defer srv.Close()

		_, err := newTestLLM(srv.URL).Summarize(context.Background(), &schema.SummarySlot{Description: "x", MaxLines: 3})
		require.Error(t, err)
	})

	t.Run("empty slot skips the call", func(t *testing.T) {
		lines, err := newTestLLM("http://127.0.0.1:1").Summarize(context.Background(), &schema.SummarySlot{MaxLines: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"No description or intention provided."}, lines)
	})
}

func TestLLMConfigFromEnv(t *testing.T) {
	t.Setenv("ORGVIZ_LLM_BASE_URL", "https://llm.example.org")
	t.Setenv("ORGVIZ_LLM_API_KEY", "")
	t.Setenv("ORGVIZ_LLM_MODEL", "m")

	_, missing := LLMConfigFromEnv()
	assert.Equal(t, []string{"ORGVIZ_LLM_API_KEY"}, missing)
}
