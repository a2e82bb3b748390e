package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/logger"
)

const (
	defaultOpenAIURL   = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o-mini"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// OpenAIClient implements Generator against the OpenAI chat completions API.
type OpenAIClient struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient builds a client from OPENAI_API_KEY and, optionally,
// OPENAI_MODEL.
func NewOpenAIClient() *OpenAIClient {
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		apiKey: os.Getenv("OPENAI_API_KEY"),
		apiURL: defaultOpenAIURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *OpenAIClient) Chat(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	const task = "chat"
	raw, err := c.complete(ctx, task, chatMessages(in), 1024, 0.7)
	if err != nil {
		return nil, err
	}

	var out ChatOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, malformedErr(task, fmt.Errorf("decoding model output: %w", err))
	}
	if err := ValidateChat(&out); err != nil {
		return nil, malformedErr(task, err)
	}
	return &out, nil
}

func (c *OpenAIClient) HealthRecommendations(ctx context.Context, in HealthInput) (*HealthOutput, error) {
	const task = "health-recommendations"
	raw, err := c.complete(ctx, task, healthMessages(in), 1024, 0.5)
	if err != nil {
		return nil, err
	}

	var out HealthOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, malformedErr(task, fmt.Errorf("decoding model output: %w", err))
	}
	if err := ValidateHealth(&out); err != nil {
		return nil, malformedErr(task, err)
	}
	return &out, nil
}

func (c *OpenAIClient) LearningPath(ctx context.Context, in LearningPathInput) (*LearningPathOutput, error) {
	const task = "learning-path"
	raw, err := c.complete(ctx, task, learningPathMessages(in), 8192, 0.6)
	if err != nil {
		return nil, err
	}

	var out LearningPathOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, malformedErr(task, fmt.Errorf("decoding model output: %w", err))
	}
	if err := ValidateLearningPath(&out); err != nil {
		return nil, malformedErr(task, err)
	}
	return &out, nil
}

// complete performs one chat-completions round trip and returns the raw
// message content. Transport-level problems come back as retryable
// GenerationErrors; an empty choice list counts as malformed output.
func (c *OpenAIClient) complete(ctx context.Context, task string, messages []message, maxTokens int, temperature float64) (string, error) {
	reqBody := openAIRequest{
		Model:          c.model,
		Messages:       messages,
		MaxTokens:      maxTokens,
		Temperature:    temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", transportErr(task, fmt.Errorf("encoding request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", transportErr(task, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportErr(task, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", transportErr(task, fmt.Errorf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var openaiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", malformedErr(task, fmt.Errorf("decoding provider response: %w", err))
	}
	if len(openaiResp.Choices) == 0 {
		return "", malformedErr(task, fmt.Errorf("provider returned no choices"))
	}

	logger.Get().Debug("model call completed",
		zap.String("task", task),
		zap.Duration("duration", time.Since(start)))

	return openaiResp.Choices[0].Message.Content, nil
}
