package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foxseedlab/meetnotes/internal/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

type Completer struct {
	client *openai.Client
	model  string
}

var _ llm.Completer = (*Completer)(nil)

func NewCompleter(apiKey, model, baseURL string, timeout time.Duration, opts ...option.RequestOption) *Completer {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(timeout))
	}
	reqOpts = append(reqOpts, opts...)
	client := openai.NewClient(reqOpts...)
	return &Completer{client: &client, model: model}
}

func (c *Completer) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.model == "" {
		return "", errors.New("openai completer: model is empty")
	}
	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(int64(maxTokens)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
	}
	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses: %w", err)
	}
	if resp.Status == responses.ResponseStatusIncomplete {
		return "", fmt.Errorf("openai responses: output incomplete (%s)", resp.IncompleteDetails.Reason)
	}
	return resp.OutputText(), nil
}
