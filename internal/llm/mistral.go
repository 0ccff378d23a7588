package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultMistralBaseURL = "https://api.mistral.ai/v1/"
	agentCompletionsPath  = "agents/completions"
)

// AgentConfig configures a Mistral agent client.
type AgentConfig struct {
	APIKey  string
	AgentID string
	BaseURL string
	Timeout time.Duration
}

// AgentClient talks to a predefined Mistral agent. The agent carries its own
// model and persona, so requests never name a model or temperature.
type AgentClient struct {
	agentID string
	timeout time.Duration
	client  *openai.Client
}

type agentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type agentResponseFormat struct {
	Type string `json:"type"`
}

type agentRequest struct {
	AgentID        string               `json:"agent_id"`
	Messages       []agentMessage       `json:"messages"`
	MaxTokens      int                  `json:"max_tokens,omitempty"`
	ResponseFormat *agentResponseFormat `json:"response_format,omitempty"`
}

// NewAgentClient builds an agent client. The Mistral response body is
// wire-compatible with chat completions, so the OpenAI SDK transport is reused.
func NewAgentClient(cfg AgentConfig) (*AgentClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s api key required", ErrProviderUnavailable, FamilyMistral)
	}
	if cfg.AgentID == "" {
		return nil, fmt.Errorf("%w: %s agent id required", ErrProviderUnavailable, FamilyMistral)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultMistralBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChatTimeout
	}
	cli := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	)
	return &AgentClient{
		agentID: cfg.AgentID,
		timeout: cfg.Timeout,
		client:  &cli,
	}, nil
}

func (c *AgentClient) Model() string {
	return "agent:" + c.agentID
}

func (c *AgentClient) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("%w: nil agent client", ErrProviderUnavailable)
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := agentRequest{
		AgentID:   c.agentID,
		Messages:  make([]agentMessage, 0, len(messages)),
		MaxTokens: opts.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, agentMessage{Role: string(m.Role), Content: m.Content})
	}
	if opts.Structured {
		req.ResponseFormat = &agentResponseFormat{Type: "json_object"}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: encode request: %w", ErrProviderRequestFailed, FamilyMistral, err)
	}

	var resp openai.ChatCompletion
	if err := c.client.Post(reqCtx, agentCompletionsPath, nil, &resp, option.WithRequestBody("application/json", body)); err != nil {
		return "", fmt.Errorf("%w: %s/%s: %w", ErrProviderRequestFailed, FamilyMistral, c.Model(), err)
	}
	return firstChoice(&resp, FamilyMistral, c.Model())
}
