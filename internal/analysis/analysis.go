// Package analysis produces an AI narrative assessment for each accepted
// candidate via Gemini. The narrative is decorative: every failure, from a
// transport error to an unparseable response, degrades to the fallback
// payload and never blocks persistence.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/option"

	"github.com/jonathan/talent-sourcer/internal/types"
)

// DefaultModel is the Gemini model used for candidate narratives.
const DefaultModel = "gemini-2.0-flash"

// analysisSchema validates the model's JSON output before it is trusted.
const analysisSchema = `{
  "type": "object",
  "required": ["score", "summary"],
  "properties": {
    "score": {"type": "integer", "minimum": 0, "maximum": 100},
    "summary": {"type": "string", "minLength": 1},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}}
  }
}`

// Client wraps a Gemini client configured for candidate analysis.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates an analysis client. The API key is required.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: DefaultModel}, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Analyze generates a narrative assessment of the candidate against the job.
// Any failure returns the fallback payload; the caller never sees an error.
func (c *Client) Analyze(ctx context.Context, job *types.Job, candidate *types.ProcessedCandidate) types.AIAnalysis {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(job, candidate)))
	if err != nil {
		return types.FallbackAnalysis()
	}

	text, err := extractText(resp)
	if err != nil {
		return types.FallbackAnalysis()
	}
	return ParseAnalysis(text)
}

// ParseAnalysis cleans, validates, and decodes a model response. Invalid
// responses degrade to the fallback payload.
func ParseAnalysis(text string) types.AIAnalysis {
	cleaned := CleanJSONBlock(text)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(analysisSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil || !result.Valid() {
		return types.FallbackAnalysis()
	}

	var analysis types.AIAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return types.FallbackAnalysis()
	}
	return analysis
}

func buildPrompt(job *types.Job, candidate *types.ProcessedCandidate) string {
	var b strings.Builder
	b.WriteString("You are a technical recruiter. Assess the candidate below against the job and respond with JSON only, matching: ")
	b.WriteString(`{"score": <0-100>, "summary": "<2-3 sentences>", "strengths": [...], "weaknesses": [...]}`)
	b.WriteString("\n\nJob:\n")
	fmt.Fprintf(&b, "  Title: %s\n", job.Title)
	if len(job.Skills) > 0 {
		fmt.Fprintf(&b, "  Skills: %s\n", strings.Join(job.Skills, ", "))
	}
	if job.ExperienceLevel != "" {
		fmt.Fprintf(&b, "  Experience: %s\n", job.ExperienceLevel)
	}
	if job.Location != "" {
		fmt.Fprintf(&b, "  Location: %s (remote: %t)\n", job.Location, job.Remote)
	}

	b.WriteString("\nCandidate:\n")
	fmt.Fprintf(&b, "  Name: %s\n", candidate.Name)
	if len(candidate.Skills) > 0 {
		fmt.Fprintf(&b, "  Skills: %s\n", strings.Join(candidate.Skills, ", "))
	}
	if candidate.ExperienceYears != nil {
		fmt.Fprintf(&b, "  Years of experience: %.1f\n", *candidate.ExperienceYears)
	}
	if candidate.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", candidate.Location)
	}
	if candidate.ResumeSummary != "" {
		fmt.Fprintf(&b, "  Summary: %s\n", candidate.ResumeSummary)
	}
	for _, w := range candidate.WorkExperience {
		fmt.Fprintf(&b, "  Experience: %s at %s (%s)\n", w.Role, w.Company, w.Duration)
	}
	return b.String()
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// CleanJSONBlock removes markdown code fences the model sometimes wraps
// around JSON output even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
