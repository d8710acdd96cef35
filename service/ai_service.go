package service

import (
	"context"

	"github.com/tieubaoca/smartmail-be/types"
)

// AIService is the generation collaborator: a possibly slow, side-effect-free
// completion call.
type AIService interface {
	Chat(ctx context.Context, messages []types.Message) (*types.Message, error)
}
