package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	log "github.com/sirupsen/logrus"

	"github.com/barefootbuddy/backend/internal/config"
)

// Service wraps the Ark chat model behind the two call shapes the
// orchestrator needs: a completion with the tool schema attached and a
// plain completion for the post-tool answer. Two bound instances are
// kept because tool binding is stateful on the model.
type Service struct {
	withTools model.ChatModel
	plain     model.ChatModel
}

// NewService builds the completion provider and binds the tool schema.
func NewService(ctx context.Context, cfg config.AIConfig, toolInfos []*schema.ToolInfo) (*Service, error) {
	withTools, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	if err := withTools.BindTools(toolInfos); err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	plain, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Service{withTools: withTools, plain: plain}, nil
}

// GenerateWithTools runs a completion that may request tool calls.
func (s *Service) GenerateWithTools(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	response, err := s.withTools.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("completion with tools failed: %w", err)
	}

	log.WithFields(log.Fields{
		"tool_calls": len(response.ToolCalls),
		"length":     len(response.Content),
	}).Debug("completion returned")
	return response, nil
}

// Generate runs a completion with no tools offered.
func (s *Service) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	response, err := s.plain.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	return response, nil
}
