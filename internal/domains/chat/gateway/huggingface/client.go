package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartlib-backend/internal/config"
	"smartlib-backend/internal/domains/chat/gateway"
)

// =====================================================
// HUGGING FACE INFERENCE CLIENT
// =====================================================

type Client struct {
	config     config.ChatConfig
	httpClient *http.Client
}

// NewClient creates a new Hugging Face Inference API client
func NewClient(cfg config.ChatConfig) gateway.Completer {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Complete calls the text-generation endpoint for the configured model
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens:   800,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(c.config.BaseURL, "/"), c.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call inference api: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference api returned status %d: %s", resp.StatusCode, string(payload))
	}

	var results []generateResponse
	if err := json.Unmarshal(payload, &results); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("inference api returned no generations")
	}

	answer := strings.TrimSpace(results[0].GeneratedText)
	if answer == "" {
		return "", fmt.Errorf("inference api returned an empty generation")
	}

	return answer, nil
}
