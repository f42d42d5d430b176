package llm

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls an OpenAI-compatible Chat Completions API. Pointing
// BaseURL at an Ollama instance works the same way.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
}

const (
	defaultChatTimeout     = 120 * time.Second
	defaultChatTemperature = 0.1
)

// NewOpenAIClient builds a client. An empty baseURL targets api.openai.com.
func NewOpenAIClient(apiKey, baseURL string, model openai.ChatModel) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(opts...)
	return &OpenAIClient{
		model:  model,
		client: &cli,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultChatTemperature
	}
	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(req.System, req.Prompt),
		Temperature: openai.Float(temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   name,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	resp, err := c.client.Chat.Completions.New(reqCtx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Answer(ctx context.Context, question, contextText string) (string, float32, error) {
	content, err := c.Complete(ctx, Request{
		System: "You answer questions concisely based only on the provided transcript excerpts.",
		Prompt: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, question),
	})
	if err != nil {
		return "", 0, err
	}
	return content, deriveConfidence(content), nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(user),
			},
		},
	})
	return messages
}

// deriveConfidence returns a simple heuristic confidence based on answer length.
// This is not a model-provided probability; it just scales with content size.
func deriveConfidence(answer string) float32 {
	if answer == "" {
		return 0
	}
	score := 0.5 + 0.5*math.Tanh(float64(len(answer))/200.0)
	return float32(score)
}
