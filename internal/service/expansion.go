package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/logger"
	"github.com/timmy/promptforge/internal/prompts"
)

// ExpansionContext is the corpus evidence sent alongside the drafts so the
// model can prefer tags and settings that real generations actually use.
type ExpansionContext struct {
	TopLoRAs   map[string]int   `json:"top_loras,omitempty"`
	Samplers   map[string]int   `json:"samplers,omitempty"`
	StepsAvg   float64          `json:"steps_avg,omitempty"`
	CfgAvg     float64          `json:"cfg_avg,omitempty"`
	Selections domain.Selection `json:"selections"`
}

// ExpansionService refines locally synthesized prompt drafts through an
// OpenAI-compatible chat completion endpoint.
type ExpansionService struct {
	client   *resty.Client
	model    string
	endpoint string
	enabled  bool
}

// ExpansionConfig holds configuration for the expansion service.
type ExpansionConfig struct {
	Enabled        bool
	Model          string
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// NewExpansionService creates a new expansion service.
// A nil or disabled config yields a service whose Expand is a no-op error
// and whose ExpandWithFallback returns the drafts unchanged.
func NewExpansionService(cfg *ExpansionConfig) *ExpansionService {
	if cfg == nil || !cfg.Enabled || cfg.APIKey == "" {
		return &ExpansionService{enabled: false}
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	client.SetTimeout(time.Duration(timeout) * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	endpoint := baseURL + "/chat/completions"

	return &ExpansionService{
		client:   client,
		model:    cfg.Model,
		endpoint: endpoint,
		enabled:  true,
	}
}

// IsEnabled returns whether expansion is enabled.
func (s *ExpansionService) IsEnabled() bool {
	return s.enabled
}

// chatRequest represents the request to the chat completion API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// expansionPayload is the serialized user-message body.
type expansionPayload struct {
	Context ExpansionContext         `json:"context"`
	Drafts  []domain.PromptVariation `json:"drafts"`
}

// Expand sends the drafts to the chat model and returns the refined
// variations. The caller keeps ownership of the drafts; they are not
// modified.
func (s *ExpansionService) Expand(ctx context.Context, ectx ExpansionContext, drafts []domain.PromptVariation) ([]domain.PromptVariation, error) {
	if !s.enabled {
		return nil, fmt.Errorf("expansion service is disabled")
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no drafts to expand")
	}

	payload, err := json.Marshal(expansionPayload{Context: ectx, Drafts: drafts})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize expansion payload: %w", err)
	}

	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: prompts.ExpansionSystemPrompt,
			},
			{
				Role:    "user",
				Content: prompts.ExpansionUserPromptHeader + "\n" + string(payload),
			},
		},
		MaxTokens:   1500,
		Temperature: 0.7,
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return nil, fmt.Errorf("expansion API call failed: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return nil, fmt.Errorf("expansion API error: %s", resp.Error.Message)
		}
		return nil, fmt.Errorf("expansion API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no response from expansion API")
	}

	refined, err := parseVariations(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return refined, nil
}

// ExpandWithFallback expands the drafts and returns them unchanged on any
// failure. Expansion is best-effort: the caller always gets a usable result.
func (s *ExpansionService) ExpandWithFallback(ctx context.Context, ectx ExpansionContext, drafts []domain.PromptVariation) []domain.PromptVariation {
	if !s.enabled {
		return drafts
	}
	refined, err := s.Expand(ctx, ectx, drafts)
	if err != nil {
		logger.CtxWarn(ctx, "Prompt expansion failed, using local drafts: %v", err)
		return drafts
	}
	return refined
}

// parseVariations decodes the model answer into variations. Models often
// wrap JSON in markdown code fences despite instructions, so fences are
// stripped first.
func parseVariations(content string) ([]domain.PromptVariation, error) {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var variations []domain.PromptVariation
	if err := json.Unmarshal([]byte(cleaned), &variations); err != nil {
		return nil, fmt.Errorf("failed to parse expansion response: %w", err)
	}
	if len(variations) == 0 {
		return nil, fmt.Errorf("expansion response contained no variations")
	}
	for _, v := range variations {
		if strings.TrimSpace(v.Positive) == "" {
			return nil, fmt.Errorf("expansion response contained an empty positive prompt")
		}
	}
	return variations, nil
}
