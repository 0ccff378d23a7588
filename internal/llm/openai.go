package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const defaultChatTimeout = 30 * time.Second

// ChatConfig configures an OpenAI-compatible chat completion client.
type ChatConfig struct {
	Family  Family
	APIKey  string
	Model   string
	BaseURL string // empty means api.openai.com
	Timeout time.Duration
}

// ChatClient calls an OpenAI-compatible Chat Completions API. It serves the
// openai family directly and groq through its compatible endpoint.
type ChatClient struct {
	family  Family
	model   string
	timeout time.Duration
	client  *openai.Client
}

// NewChatClient builds a client for one model. A missing key or model yields
// ErrProviderUnavailable.
func NewChatClient(cfg ChatConfig) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s api key required", ErrProviderUnavailable, cfg.Family)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: %s model required", ErrProviderUnavailable, cfg.Family)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChatTimeout
	}
	// Retries are owned by the fallback policy, not the SDK.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := openai.NewClient(opts...)
	return &ChatClient{
		family:  cfg.Family,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		client:  &cli,
	}, nil
}

func (c *ChatClient) Model() string {
	return c.model
}

func (c *ChatClient) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("%w: nil chat client", ErrProviderUnavailable)
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toOpenAIMessages(messages),
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Structured {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(reqCtx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %s/%s: %w", ErrProviderRequestFailed, c.family, c.model, err)
	}
	return firstChoice(resp, c.family, c.model)
}

func firstChoice(resp *openai.ChatCompletion, family Family, model string) (string, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: %s/%s: no choices returned", ErrProviderRequestFailed, family, model)
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}
