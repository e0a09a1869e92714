package usecases

import (
	"context"
	"net/http"

	"prompthash.backend/internal/domain/entities"
	domainerrors "prompthash.backend/internal/domain/errors"
	"prompthash.backend/internal/infrastructure/gateway"
)

// AssistUsecase bridges chat and prompt-improvement requests to the AI
// gateway. Nothing is retried; failures surface to the caller except for
// ImprovePrompt, which degrades to the original text.
type AssistUsecase struct {
	client *gateway.AssistClient
}

func NewAssistUsecase(client *gateway.AssistClient) *AssistUsecase {
	return &AssistUsecase{client: client}
}

func (u *AssistUsecase) Chat(ctx context.Context, input *entities.ChatInput) (*entities.AssistReply, error) {
	reply, err := u.client.Chat(ctx, input.Prompt, input.Model)
	if err != nil {
		return nil, domainerrors.Provider(err)
	}
	return reply, nil
}

func (u *AssistUsecase) ImprovePrompt(ctx context.Context, input *entities.ImprovePromptInput) (*entities.ImprovePromptResult, error) {
	result, err := u.client.ImprovePrompt(ctx, input.Prompt, input.Target)
	if err != nil {
		// Degrade to the unmodified prompt rather than blocking the form.
		return &entities.ImprovePromptResult{Prompt: input.Prompt, Improved: false}, nil
	}
	return result, nil
}

func (u *AssistUsecase) GenerateImage(ctx context.Context, input *entities.GenerateImageInput) (*entities.AssistReply, error) {
	reply, err := u.client.GenerateImage(ctx, input.Prompt, input.Model)
	if err != nil {
		return nil, domainerrors.Provider(err)
	}
	return reply, nil
}

func (u *AssistUsecase) Models(ctx context.Context) ([]string, error) {
	return u.client.Models(ctx)
}

func (u *AssistUsecase) Health(ctx context.Context) error {
	if err := u.client.Health(ctx); err != nil {
		return domainerrors.NewAppError(http.StatusServiceUnavailable, "GATEWAY_UNAVAILABLE", "ai gateway unreachable", domainerrors.ErrGatewayUnavailable)
	}
	return nil
}
