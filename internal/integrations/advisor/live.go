package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/teenbudget/backend/internal/config"
	"github.com/teenbudget/backend/internal/models"
)

const systemPrompt = `You are a financial advisor for teenagers. Analyze the
spending data in the user message and answer with a single JSON object, no
markdown, matching exactly this schema:
{
  "summary": {"main_findings": string, "key_insights": [string], "risk_areas": [string], "savings_potential": number},
  "category_breakdown": [{"category": string, "amount": number, "share": number, "comment": string}],
  "behavioral_insights": {"spending_patterns": string, "emotional_triggers": [string], "social_factors": string},
  "recommendations": {"immediate": [string], "short_term": [string], "long_term": [string]},
  "education": {"financial_literacy": string, "practical_skills": [string], "resources": [string]},
  "projections": {"next_month": string, "three_months": string, "savings_one_year": string}
}
Keep the tone friendly and age-appropriate. Amounts are in one currency unit.`

// LiveClient calls an OpenAI-compatible chat-completion endpoint
type LiveClient struct {
	url    string
	apiKey string
	model  string
	client *http.Client
	log    *logrus.Logger
}

// NewLiveClient initializes a live advisor client
func NewLiveClient(cfg *config.Config, log *logrus.Logger) *LiveClient {
	return &LiveClient{
		url:    cfg.AdvisorURL,
		apiKey: cfg.AdvisorAPIKey,
		model:  cfg.AdvisorModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// buildUserPrompt serializes the analysis payload for the model
func (c *LiveClient) buildUserPrompt(req Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to serialize analysis payload: %w", err)
	}
	return fmt.Sprintf("Analyze my finances for period %q. Data:\n%s", req.Period, payload), nil
}

// sendRequest posts the completion request to the provider
func (c *LiveClient) sendRequest(ctx context.Context, userPrompt string) ([]byte, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, raw)
	}

	c.log.Debugf("Advisor raw response: %s", raw)
	return raw, nil
}

// parseResponse extracts and validates the model's JSON answer
func (c *LiveClient) parseResponse(raw []byte) (*models.AnalysisResult, error) {
	var completion chatResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	content := stripCodeFence(completion.Choices[0].Message.Content)
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if result.Summary.MainFindings == "" {
		return nil, fmt.Errorf("%w: missing summary.main_findings", ErrMalformedResponse)
	}
	if len(result.Recommendations.Immediate)+len(result.Recommendations.ShortTerm)+
		len(result.Recommendations.LongTerm) == 0 {
		return nil, fmt.Errorf("%w: no recommendations", ErrMalformedResponse)
	}

	return &result, nil
}

// Analyze submits the spending summary and returns the parsed analysis
func (c *LiveClient) Analyze(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	userPrompt, err := c.buildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := c.sendRequest(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	result, err := c.parseResponse(raw)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Advisor analysis generated for period %q (%d transactions)",
		req.Period, len(req.Transactions))
	return result, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models insist on
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
