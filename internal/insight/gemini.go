package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/MrSnakeDoc/rolewithai/internal/validation"
)

// maxDescriptionChars bounds how much of the posting body goes into the prompt.
const maxDescriptionChars = 500

// JSONModel is a text model asked to answer with a JSON document.
type JSONModel interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiModel implements JSONModel for Google Gemini.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini client for model.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{client: client, model: model}, nil
}

// GenerateJSON runs prompt with a JSON response type.
func (g *GeminiModel) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(resp)
}

// Name is the configured model name.
func (g *GeminiModel) Name() string { return g.model }

// Close releases the underlying client.
func (g *GeminiModel) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// ─────────────────────────────────────────────────────────────────
// LLM-backed generator
// ─────────────────────────────────────────────────────────────────

// LLMGenerator asks a JSONModel for advice and parses its answer.
type LLMGenerator struct {
	model    JSONModel
	validate *validation.Validator
}

func NewLLMGenerator(model JSONModel) *LLMGenerator {
	return &LLMGenerator{model: model, validate: validation.New()}
}

func (g *LLMGenerator) Generate(ctx context.Context, req Request) (Insights, error) {
	text, err := g.model.GenerateJSON(ctx, buildPrompt(req))
	if err != nil {
		return Insights{}, err
	}

	ins, err := parseInsights(text)
	if err != nil {
		return Insights{}, err
	}
	if err := g.validate.Struct(ins); err != nil {
		return Insights{}, fmt.Errorf("incomplete insights: %w", err)
	}
	return ins, nil
}

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

var errEmptyAnswer = errors.New("empty model answer")

// parseInsights reads the model answer. Markdown fences and chatter around the
// object are tolerated; a non-JSON answer is split into message and advice.
func parseInsights(text string) (Insights, error) {
	text = cleanJSONBlock(text)
	if text == "" {
		return Insights{}, errEmptyAnswer
	}

	if obj := jsonObjectRe.FindString(text); obj != "" {
		var ins Insights
		if err := json.Unmarshal([]byte(obj), &ins); err == nil {
			return ins, nil
		}
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	msg := "RoleWithAI is analyzing this posting..."
	for _, l := range lines {
		if strings.Contains(l, "RoleWithAI says") {
			msg = l
			break
		}
	}
	advice := text
	if len(lines) > 1 {
		advice = strings.Join(lines[1:], " ")
	}
	return Insights{Message: msg, DetailedAdvice: advice}, nil
}

func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are RoleWithAI, a supportive career co-pilot assistant. Analyze this job posting and provide helpful, empathetic advice.\n\n")
	fmt.Fprintf(&b, "Job Title: %s\n", req.Title)
	fmt.Fprintf(&b, "Company: %s\n", req.Company)
	fmt.Fprintf(&b, "Truth Score: %d/100\n", req.TruthScore)
	fmt.Fprintf(&b, "Ghost Risk: %s\n", req.GhostRisk)
	fmt.Fprintf(&b, "Age Factor: %.0f/100 (how fresh the posting is)\n", req.AgeFactor)
	fmt.Fprintf(&b, "Response Rate: %.0f%% (community-reported)\n", req.ResponseRate)
	fmt.Fprintf(&b, "Ghost Signal: %.0f/100 (mentions of ghosting, lower is better)\n\n", req.GhostSignal)

	if desc := strings.TrimSpace(req.Description); desc != "" {
		if r := []rune(desc); len(r) > maxDescriptionChars {
			desc = string(r[:maxDescriptionChars]) + "..."
		}
		fmt.Fprintf(&b, "Job Description: %s\n\n", desc)
	}

	b.WriteString(`Provide:
1. A brief 1-2 sentence message (like "RoleWithAI says: ...")
2. Detailed advice (2-3 sentences) explaining why the user should or shouldn't apply

Use "we" language to be supportive. Be honest but kind. If the ghost risk is high, gently suggest focusing energy elsewhere. If it's a good match, be encouraging.

Format your response as JSON:
{
  "message": "RoleWithAI says: ...",
  "detailedAdvice": "..."
}`)
	return b.String()
}
