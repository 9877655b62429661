package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/windlant/mcp-client/internal/protocol"
)

// Function styles of the chat completions API.
const (
	StyleTools     = "tools"     // tools + tool_choice
	StyleFunctions = "functions" // legacy functions + function_call
)

// OpenAIModel talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, DeepSeek).
type OpenAIModel struct {
	provider      string
	apiKey        string
	baseURL       string
	modelName     string
	maxTokens     int
	temperature   *float64
	functionStyle string
	systemPrompt  string
	httpClient    *http.Client
}

// NewOpenAIModel builds a client from decoded provider settings.
func NewOpenAIModel(provider string, s Settings) (*OpenAIModel, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", provider)
	}
	style := strings.ToLower(strings.TrimSpace(s.FunctionStyle))
	switch style {
	case "":
		style = StyleTools
	case StyleTools, StyleFunctions:
	default:
		return nil, fmt.Errorf("unknown function_style %q", s.FunctionStyle)
	}
	timeout := time.Duration(s.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIModel{
		provider:      provider,
		apiKey:        s.APIKey,
		baseURL:       strings.TrimRight(s.BaseURL, "/"),
		modelName:     s.Model,
		maxTokens:     s.MaxTokens,
		temperature:   s.Temperature,
		functionStyle: style,
		systemPrompt:  s.SystemPrompt,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Chat sends a conversation without tools and returns the reply text.
func (m *OpenAIModel) Chat(ctx context.Context, messages []protocol.Message) (string, error) {
	reply, err := m.complete(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return reply.Content, nil
}

// ChatWithTools offers functions in "auto" mode.
func (m *OpenAIModel) ChatWithTools(ctx context.Context, messages []protocol.Message, functions []FunctionSpec) (Reply, error) {
	return m.complete(ctx, messages, functions)
}

type wireMessage struct {
	Role         string              `json:"role"`
	Content      *string             `json:"content"`
	Name         string              `json:"name,omitempty"`
	ToolCalls    []protocol.ToolCall `json:"tool_calls,omitempty"`
	ToolCallID   string              `json:"tool_call_id,omitempty"`
	FunctionCall *protocol.Function  `json:"function_call,omitempty"`
}

func (m *OpenAIModel) wireMessages(messages []protocol.Message) []wireMessage {
	if m.systemPrompt != "" {
		messages = append([]protocol.Message{protocol.SystemMessage(m.systemPrompt)}, messages...)
	}
	out := make([]wireMessage, 0, len(messages))
	for _, msg := range messages {
		w := wireMessage{Role: msg.Role, Name: msg.Name}
		if len(msg.ToolCalls) == 0 {
			content := msg.Content
			w.Content = &content
		}
		if m.functionStyle == StyleFunctions {
			switch {
			case msg.Role == protocol.RoleTool:
				w.Role = "function"
			case len(msg.ToolCalls) > 0:
				fn := msg.ToolCalls[0].Function
				w.FunctionCall = &fn
			}
		} else {
			w.ToolCalls = msg.ToolCalls
			w.ToolCallID = msg.ToolCallID
		}
		out = append(out, w)
	}
	return out
}

func (m *OpenAIModel) buildRequest(messages []protocol.Message, functions []FunctionSpec) map[string]any {
	req := map[string]any{
		"model":    m.modelName,
		"messages": m.wireMessages(messages),
		"stream":   false,
	}
	if m.maxTokens > 0 {
		req["max_tokens"] = m.maxTokens
	}
	if m.temperature != nil {
		req["temperature"] = *m.temperature
	}
	if len(functions) > 0 {
		if m.functionStyle == StyleFunctions {
			req["functions"] = functions
			req["function_call"] = "auto"
		} else {
			tools := make([]ToolForAPI, 0, len(functions))
			for _, fn := range functions {
				tools = append(tools, ToolForAPI{Type: "function", Function: fn})
			}
			req["tools"] = tools
			req["tool_choice"] = "auto"
		}
	}
	return req
}

func (m *OpenAIModel) complete(ctx context.Context, messages []protocol.Message, functions []FunctionSpec) (Reply, error) {
	bodyBytes, err := json.Marshal(m.buildRequest(messages, functions))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Reply{}, fmt.Errorf("%s API error (%d): %s", m.provider, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content      *string             `json:"content"`
				ToolCalls    []protocol.ToolCall `json:"tool_calls,omitempty"`
				FunctionCall *protocol.Function  `json:"function_call,omitempty"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return Reply{}, fmt.Errorf("failed to parse %s response: %w", m.provider, err)
	}
	if len(apiResp.Choices) == 0 {
		return Reply{}, errors.New("no choices in response")
	}

	msg := apiResp.Choices[0].Message
	reply := Reply{ToolCalls: msg.ToolCalls}
	if msg.Content != nil {
		reply.Content = *msg.Content
	}
	if msg.FunctionCall != nil && msg.FunctionCall.Name != "" {
		reply.ToolCalls = append(reply.ToolCalls, protocol.ToolCall{Type: "function", Function: *msg.FunctionCall})
	}
	return reply, nil
}
