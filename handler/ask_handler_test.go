package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/smartmail-be/service"
	"github.com/tieubaoca/smartmail-be/types"
)

type stubVectorIndex struct {
	hits []types.SearchHit
}

func (s *stubVectorIndex) EnsureIndex(ctx context.Context) error { return nil }

func (s *stubVectorIndex) Upsert(ctx context.Context, namespace string, records []types.Chunk) error {
	return nil
}

func (s *stubVectorIndex) Search(ctx context.Context, namespace, query string, topK int) ([]types.SearchHit, error) {
	return s.hits, nil
}

type stubAIService struct {
	reply string
}

func (s *stubAIService) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	return &types.Message{Role: "assistant", Content: s.reply}, nil
}

func newAskTestHandler(hits []types.SearchHit, reply string) http.Handler {
	answerService := service.NewAnswerService(&stubVectorIndex{hits: hits}, &stubAIService{reply: reply}, "test")
	return NewAskHandler(answerService).HandleAsk()
}

func TestHandleAskSuccess(t *testing.T) {
	h := newAskTestHandler([]types.SearchHit{{Text: "context chunk", Score: 0.9}}, "the answer")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"what?"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var res types.DataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, types.StatusSuccess, res.Status)
}

func TestHandleAskNoResults(t *testing.T) {
	h := newAskTestHandler(nil, "unused")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question":"what?"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var res types.DataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, types.StatusNoResults, res.Status)
}

func TestHandleAskValidation(t *testing.T) {
	h := newAskTestHandler(nil, "unused")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing question", `{}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleAskMethodNotAllowed(t *testing.T) {
	h := newAskTestHandler(nil, "unused")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
