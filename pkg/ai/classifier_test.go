package ai

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRateLimit(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"status code text", errors.New("unexpected status 429"), true},
		{"rate limit text", errors.New("openai: Rate Limit reached"), true},
		{"too many requests", errors.New("Too Many Requests"), true},
		{"resource exhausted", errors.New("RESOURCE_EXHAUSTED: quota"), true},
		{"permanent failure", errors.New("400 bad request"), false},
		{"network error", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRateLimit(tc.err))
		})
	}
}

func TestExtractJSON_StripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"sentiment\": 1}\n```"
	assert.Equal(t, `{"sentiment": 1}`, extractJSON(fenced))

	bare := `{"sentiment": -1}`
	assert.Equal(t, bare, extractJSON(bare))
}

func TestBuildPrompt_IncludesTranscriptAndPains(t *testing.T) {
	prompt := BuildPrompt("hablamos de precios", []string{"Integración lenta", "Costos altos"})

	assert.Contains(t, prompt, "hablamos de precios")
	assert.Contains(t, prompt, "- Integración lenta")
	assert.Contains(t, prompt, "- Costos altos")
}

func TestBuildPrompt_NoKnownPains(t *testing.T) {
	prompt := BuildPrompt("sin historial", nil)

	assert.Contains(t, prompt, "(ninguna todavía)")
	assert.NotContains(t, prompt, "- ninguna")
}

func TestResultSchema_Shape(t *testing.T) {
	require.Equal(t, "object", resultSchema["type"])
	assert.Equal(t, false, resultSchema["additionalProperties"])

	props, ok := resultSchema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"sentiment", "urgency", "budget_tier", "pains", "fit_score", "close_probability", "summary"} {
		assert.Contains(t, props, field, fmt.Sprintf("schema must expose %s", field))
	}

	required, ok := resultSchema["required"].([]string)
	require.True(t, ok)
	assert.True(t, len(required) >= len(props) || len(required) > 0)
	assert.True(t, strings.Contains(fmt.Sprint(required), "sentiment"))
}
