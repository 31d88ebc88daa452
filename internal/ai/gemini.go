package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

// GeminiClient talks to the Gemini generateContent REST endpoint with the
// Google Search grounding tool attached, so the model may consult live web
// content before answering.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	fetcher Fetcher
	log     *zap.SugaredLogger
}

// NewGeminiClient accepts an empty apiKey: the bot still starts, and every
// generation fails with a configuration error until the key is supplied.
func NewGeminiClient(apiKey string, fetcher Fetcher, log *zap.SugaredLogger) *GeminiClient {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   model,
		fetcher: fetcher,
		log:     log,
	}
}

// Gemini REST wire shapes. The response struct keeps only what we read.

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Tools             []geminiTool    `json:"tools,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (c *GeminiClient) GenerateGrounded(
	ctx context.Context,
	systemPrompt string,
	userPrompt string,
) (string, error) {

	if c.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: userPrompt}},
			},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Tools: []geminiTool{{GoogleSearch: &struct{}{}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	// The key rides as a query parameter on a fixed endpoint.
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var resp geminiResponse
	err = c.fetcher.Fetch(ctx, FetchRequest{
		URL:     url,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    payload,
	}, &resp)
	if err != nil {
		c.log.Warnf("[ai] Gemini error: %v", err)
		return "", err
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no completion returned")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}

	raw := strings.TrimSpace(b.String())
	if raw == "" {
		return "", errors.New("completion text is empty")
	}

	c.log.Debugf("[ai] raw model response: %s", short(raw))
	return raw, nil
}
