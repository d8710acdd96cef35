package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tieubaoca/smartmail-be/database"
	"github.com/tieubaoca/smartmail-be/types"
)

// DefaultTopK is the number of chunks retrieved when the caller does not ask
// for a specific count.
const DefaultTopK = 5

// maxContextChars bounds the context block handed to the generation step.
// Hits are dropped or truncated from the lowest-ranked end first.
const maxContextChars = 6000

const answerPromptTemplate = `You are an expert assistant answering questions based on extracted chunks.
Here is the question:
%s

And here is the context:
%s

Please answer concisely and accurately based only on the above context.
`

// AnswerService answers natural-language queries over the ingested corpus:
// search the vector index, assemble a ranked context window, delegate to the
// generation collaborator. This is a terminal boundary — provider failures
// come back as a QueryResult with status "error", never as a raised error.
type AnswerService struct {
	vectorDB  database.VectorIndex
	aiService AIService
	namespace string
}

func NewAnswerService(vectorDB database.VectorIndex, aiService AIService, namespace string) *AnswerService {
	return &AnswerService{
		vectorDB:  vectorDB,
		aiService: aiService,
		namespace: namespace,
	}
}

func (s *AnswerService) Answer(ctx context.Context, query string, topK int) *types.QueryResult {
	if topK <= 0 {
		return &types.QueryResult{
			Status:       types.StatusError,
			SourceChunks: []string{},
			ErrorMessage: fmt.Sprintf("%v: top_k must be greater than zero", types.ErrInvalidArgument),
		}
	}

	hits, err := s.vectorDB.Search(ctx, s.namespace, query, topK)
	if err != nil {
		return &types.QueryResult{
			Status:       types.StatusError,
			SourceChunks: []string{},
			ErrorMessage: err.Error(),
		}
	}
	if len(hits) == 0 {
		return &types.QueryResult{
			Status:       types.StatusNoResults,
			SourceChunks: []string{},
		}
	}

	contextBlock, sources := buildContext(hits, maxContextChars)

	prompt := fmt.Sprintf(answerPromptTemplate, query, contextBlock)
	msg, err := s.aiService.Chat(ctx, []types.Message{{Role: "user", Content: prompt}})
	if err != nil {
		genErr := &types.GenerationError{Err: err}
		return &types.QueryResult{
			Status:       types.StatusError,
			SourceChunks: []string{},
			ErrorMessage: genErr.Error(),
		}
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return &types.QueryResult{
			Status:       types.StatusError,
			SourceChunks: []string{},
			ErrorMessage: "generation returned no usable text",
		}
	}

	return &types.QueryResult{
		Status:       types.StatusSuccess,
		Answer:       msg.Content,
		SourceChunks: sources,
	}
}

// buildContext concatenates hit texts in ranked order up to the budget. The
// lowest-ranked hit that does not fit is truncated; anything after it is
// dropped. Sources lists the chunk texts that contributed to the context, in
// rank order.
func buildContext(hits []types.SearchHit, budget int) (string, []string) {
	var parts []string
	var sources []string
	used := 0
	for _, hit := range hits {
		if hit.Text == "" {
			continue
		}
		remaining := budget - used
		if remaining <= 0 {
			break
		}
		text := hit.Text
		if len(text) > remaining {
			text = text[:remaining]
		}
		parts = append(parts, text)
		sources = append(sources, hit.Text)
		used += len(text) + 2
	}
	if sources == nil {
		sources = []string{}
	}
	return strings.Join(parts, "\n\n"), sources
}
