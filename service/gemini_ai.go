package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/tieubaoca/smartmail-be/types"
	"google.golang.org/api/option"
)

// GeminiService is the Gemini-backed generation collaborator. Multiple API
// keys can be supplied; a failed call rotates to the next key and retries
// once.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	model      *genai.GenerativeModel
	modelName  string
	timeout    time.Duration
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string, timeout time.Duration) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	service := &GeminiService{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
		timeout:    timeout,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) Chat(ctx context.Context, messages []types.Message) (*types.Message, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages provided")
	}

	history := make([]*genai.Content, 0, len(messages)-1)
	for _, msg := range messages[:len(messages)-1] {
		history = append(history, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  msg.Role,
		})
	}
	prompt := genai.Text(messages[len(messages)-1].Content)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chat := s.model.StartChat()
	chat.History = history
	resp, err := chat.SendMessage(ctx, prompt)
	if err != nil {
		// Try rotating API key if there's an error
		if err := s.rotateAPIKey(); err != nil {
			return nil, err
		}
		chat = s.model.StartChat()
		chat.History = history
		resp, err = chat.SendMessage(ctx, prompt)
		if err != nil {
			return nil, err
		}
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				content += string(text)
			}
		}
	}

	return &types.Message{
		Role:    "assistant",
		Content: content,
	}, nil
}
