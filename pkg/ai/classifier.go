// Package ai wraps the external language-model classifier behind a small
// interface. One call in, one structured Result out; retry policy belongs to
// the caller.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/dealsense/dealsense/pkg/config"
)

// ErrInvalidOutput marks an empty or undecodable classifier payload.
// Retrying will not fix a structural mismatch, so callers treat it as fatal.
var ErrInvalidOutput = errors.New("invalid classifier output")

// Classifier produces a structured judgment for a transcript prompt
type Classifier interface {
	Classify(ctx context.Context, prompt string) (*Result, error)
}

// OpenAIClassifier calls the provider's Responses API with a strict JSON
// schema constraining the output to the Result shape.
type OpenAIClassifier struct {
	client openai.Client
	model  string
}

// NewOpenAIClassifier creates a classifier from config
func NewOpenAIClassifier(cfg *config.ClassifierConfig) *OpenAIClassifier {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClassifier{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Classify performs a single classification call. Rate-limit failures are
// returned as-is so the caller can detect them with IsRateLimit.
func (c *OpenAIClassifier) Classify(ctx context.Context, prompt string) (*Result, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "MeetingClassification",
			Schema:      resultSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Structured sales-meeting classification"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(resp.OutputText())
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrInvalidOutput)
	}

	var result Result
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return &result, nil
}

// IsRateLimit reports whether an error is a transient rate-limit signal,
// identifiable by status code or by well-known provider error patterns.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted")
}

// extractJSON strips markdown code fences some models wrap around JSON output
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
