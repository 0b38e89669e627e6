package assistant

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

var ErrEmptyResponse = errors.New("model returned no text")

// Completer turns a system prompt and a user message into model text.
type Completer interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

// OpenAI is a Completer backed by the Responses API.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int64
}

// NewOpenAI returns nil when no API key is configured so callers can fall
// back to offline behavior.
func NewOpenAI(apiKey, model string, maxTokens int64) *OpenAI {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{client: &client, model: model, maxTokens: maxTokens}
}

func (o *OpenAI) Complete(ctx context.Context, system, message string) (string, error) {
	input := responses.ResponseInputParam{
		responses.ResponseInputItemParamOfMessage(system, responses.EasyInputMessageRoleSystem),
		responses.ResponseInputItemParamOfMessage(message, responses.EasyInputMessageRoleUser),
	}

	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openai.ResponsesModel(o.model),
		Input:           responses.ResponseNewParamsInputUnion{OfInputItemList: input},
		MaxOutputTokens: openai.Int(o.maxTokens),
		Temperature:     openai.Float(0.4),
	})
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
