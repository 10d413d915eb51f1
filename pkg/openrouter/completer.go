package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v2"
	"github.com/rs/zerolog/log"

	contractx "github.com/castlebay/supportdesk/agent/contract"
)

// Completer adapts the chat-completions API to the session's completion
// boundary: ordered turns plus the operation catalog go out, final text or
// operation calls come back.
type Completer struct {
	client      *openaisdk.Client
	model       string
	maxTokens   int64
	temperature float64
}

var _ contractx.CompletionClient = (*Completer)(nil)

func NewCompleter(cfg Config) (*Completer, error) {
	client := NewClient(cfg)
	if client == nil {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	return &Completer{
		client:      client,
		model:       strings.TrimSpace(cfg.Model),
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (c *Completer) Complete(
	ctx context.Context,
	system string,
	turns []contractx.Turn,
	catalog []contractx.OperationInfo,
) (contractx.Completion, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.model),
		Messages:    buildMessages(system, turns),
		Tools:       buildTools(catalog),
		MaxTokens:   openaisdk.Int(c.maxTokens),
		Temperature: openaisdk.Float(c.temperature),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return contractx.Completion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return contractx.Completion{}, fmt.Errorf("chat completion returned no choices")
	}

	msg := resp.Choices[0].Message

	out := contractx.Completion{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		name := strings.TrimSpace(tc.Function.Name)
		if name == "" {
			continue
		}
		args := map[string]any{}
		if raw := strings.TrimSpace(tc.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return contractx.Completion{}, fmt.Errorf("invalid arguments for operation %s: %w", name, err)
			}
		}
		out.Calls = append(out.Calls, contractx.OperationCall{
			ID:        tc.ID,
			Operation: name,
			Args:      args,
		})
	}

	log.Debug().Int("turns", len(turns)).Int("calls", len(out.Calls)).Msg("completion round-trip")
	return out, nil
}

// buildMessages reconstructs the SDK message sequence from the session's
// turn history on every round-trip.
func buildMessages(system string, turns []contractx.Turn) []openaisdk.ChatCompletionMessageParamUnion {
	msgs := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	if system != "" {
		msgs = append(msgs, openaisdk.SystemMessage(system))
	}

	for _, turn := range turns {
		switch turn.Role {
		case contractx.RoleUser:
			msgs = append(msgs, openaisdk.UserMessage(turn.Content))

		case contractx.RoleAssistant:
			if len(turn.Calls) == 0 {
				msgs = append(msgs, openaisdk.AssistantMessage(turn.Content))
				continue
			}
			assistant := openaisdk.ChatCompletionAssistantMessageParam{}
			if turn.Content != "" {
				assistant.Content.OfString = openaisdk.String(turn.Content)
			}
			for _, call := range turn.Calls {
				rawArgs, _ := json.Marshal(call.Args)
				assistant.ToolCalls = append(assistant.ToolCalls, openaisdk.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openaisdk.ChatCompletionMessageFunctionToolCallParam{
						ID: call.ID,
						Function: openaisdk.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      call.Operation,
							Arguments: string(rawArgs),
						},
					},
				})
			}
			msgs = append(msgs, openaisdk.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

		case contractx.RoleOperation:
			msgs = append(msgs, openaisdk.ToolMessage(turn.Content, turn.CallID))
		}
	}

	return msgs
}

func buildTools(catalog []contractx.OperationInfo) []openaisdk.ChatCompletionToolUnionParam {
	tools := make([]openaisdk.ChatCompletionToolUnionParam, 0, len(catalog))
	for _, op := range catalog {
		tools = append(tools, openaisdk.ChatCompletionFunctionTool(openaisdk.FunctionDefinitionParam{
			Name:        op.Name,
			Description: openaisdk.String(op.Description),
			Parameters:  openaisdk.FunctionParameters(op.JSONSchema()),
		}))
	}
	return tools
}
