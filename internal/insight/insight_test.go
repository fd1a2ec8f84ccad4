package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

type fakeModel struct {
	answer string
	err    error
	prompt string
	delay  time.Duration
}

func (m *fakeModel) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.answer, m.err
}

func TestFallbackBuckets(t *testing.T) {
	tests := []struct {
		score  int
		prefix string
	}{
		{100, "This role is a high-intent match."},
		{70, "This role is a high-intent match."},
		{69, "Moderate match."},
		{40, "Moderate match."},
		{39, "High ghost risk detected."},
		{0, "High ghost risk detected."},
	}

	for _, tt := range tests {
		got := Fallback(Request{Company: "Acme", TruthScore: tt.score})
		assert.True(t, strings.HasPrefix(got.Message, tt.prefix), "score %d: %q", tt.score, got.Message)
		assert.Contains(t, got.DetailedAdvice, "Acme")
	}
}

func TestLLMGeneratorParsesJSON(t *testing.T) {
	model := &fakeModel{answer: "```json\n{\"message\":\"RoleWithAI says: go for it\",\"detailedAdvice\":\"Fresh and responsive.\"}\n```"}
	gen := NewLLMGenerator(model)

	got, err := gen.Generate(context.Background(), Request{
		Title:       "Backend Engineer",
		Company:     "Acme",
		TruthScore:  72,
		GhostRisk:   domain.RiskLow,
		Description: strings.Repeat("x", 800),
	})
	require.NoError(t, err)
	assert.Equal(t, "RoleWithAI says: go for it", got.Message)
	assert.Equal(t, "Fresh and responsive.", got.DetailedAdvice)

	assert.Contains(t, model.prompt, "Company: Acme")
	assert.Contains(t, model.prompt, "Truth Score: 72/100")
	assert.Contains(t, model.prompt, strings.Repeat("x", 500)+"...")
	assert.NotContains(t, model.prompt, strings.Repeat("x", 501))
}

func TestLLMGeneratorPlainText(t *testing.T) {
	model := &fakeModel{answer: "Some preamble\nRoleWithAI says: careful here\nThey repost a lot."}
	got, err := NewLLMGenerator(model).Generate(context.Background(), Request{Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "RoleWithAI says: careful here", got.Message)
	assert.Equal(t, "RoleWithAI says: careful here They repost a lot.", got.DetailedAdvice)
}

func TestLLMGeneratorRejectsIncompleteJSON(t *testing.T) {
	model := &fakeModel{answer: `{"message":"only half"}`}
	_, err := NewLLMGenerator(model).Generate(context.Background(), Request{Company: "Acme"})
	require.Error(t, err)
}

func TestResilient(t *testing.T) {
	req := Request{Company: "Acme", TruthScore: 45}
	want := Fallback(req)

	t.Run("no primary", func(t *testing.T) {
		r := NewResilient(nil, time.Second, logger.NewNop())
		assert.False(t, r.Enabled())
		got, err := r.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("primary error", func(t *testing.T) {
		r := NewResilient(NewLLMGenerator(&fakeModel{err: errors.New("quota")}), time.Second, logger.NewNop())
		got, err := r.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("primary timeout", func(t *testing.T) {
		r := NewResilient(NewLLMGenerator(&fakeModel{delay: time.Second}), 10*time.Millisecond, logger.NewNop())
		got, err := r.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("primary ok", func(t *testing.T) {
		model := &fakeModel{answer: `{"message":"m","detailedAdvice":"d"}`}
		r := NewResilient(NewLLMGenerator(model), time.Second, logger.NewNop())
		got, err := r.Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, Insights{Message: "m", DetailedAdvice: "d"}, got)
	})
}
