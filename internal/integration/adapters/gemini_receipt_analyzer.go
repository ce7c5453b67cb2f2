package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// DefaultGeminiModel is the model used for receipt analysis.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiReceiptAnalyzer implements adapter.ReceiptAnalyzer using Google Gemini.
type GeminiReceiptAnalyzer struct {
	apiKey    string
	modelName string
}

// NewGeminiReceiptAnalyzer creates a new Gemini receipt analyzer.
// An empty API key yields an analyzer that reports itself unavailable.
func NewGeminiReceiptAnalyzer(apiKey, modelName string) *GeminiReceiptAnalyzer {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiReceiptAnalyzer{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

var _ adapter.ReceiptAnalyzer = (*GeminiReceiptAnalyzer)(nil)

// IsAvailable checks if the analyzer has credentials.
func (s *GeminiReceiptAnalyzer) IsAvailable() bool {
	return s.apiKey != ""
}

// Analyze sends the receipt image with the claimed expense and scores the match.
func (s *GeminiReceiptAnalyzer) Analyze(ctx context.Context, request *adapter.ReceiptAnalysisRequest) (*entity.ReceiptScores, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini receipt analyzer is not configured")
	}
	if len(request.Image) == 0 {
		return nil, fmt.Errorf("receipt image is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	mimeType := request.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: request.Image},
		genai.Text(buildReceiptPrompt(request)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	scores, err := parseReceiptScores(text, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return scores, nil
}

func buildReceiptPrompt(request *adapter.ReceiptAnalysisRequest) string {
	var sb strings.Builder

	sb.WriteString(`You review expense receipts for a corporate reimbursement desk.
Compare the attached receipt image with the expense the employee claimed.

CLAIMED EXPENSE:
`)
	sb.WriteString(fmt.Sprintf("- Title: %q\n", request.Title))
	sb.WriteString(fmt.Sprintf("- Category: %q\n", request.Category))
	sb.WriteString(fmt.Sprintf("- Amount: %s\n", request.Amount.StringFixed(2)))
	sb.WriteString(`
Score each aspect between 0.0 (no support) and 1.0 (fully supported):
- amount_match: the receipt total equals the claimed amount
- category_match: the merchant and items fit the claimed category
- authenticity: the image looks like a genuine, unaltered receipt

Respond with a single JSON object and nothing else:
{"amount_match": 0.0, "category_match": 0.0, "authenticity": 0.0, "summary": "one short sentence"}
`)
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type geminiReceiptScores struct {
	AmountMatch   float64 `json:"amount_match"`
	CategoryMatch float64 `json:"category_match"`
	Authenticity  float64 `json:"authenticity"`
	Summary       string  `json:"summary"`
}

// parseReceiptScores decodes the model output, tolerating markdown fences,
// and clamps every score into [0, 1].
func parseReceiptScores(text string, analyzedAt time.Time) (*entity.ReceiptScores, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiReceiptScores
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	return &entity.ReceiptScores{
		AmountMatch:   clampScore(raw.AmountMatch),
		CategoryMatch: clampScore(raw.CategoryMatch),
		Authenticity:  clampScore(raw.Authenticity),
		Summary:       strings.TrimSpace(raw.Summary),
		AnalyzedAt:    analyzedAt,
	}, nil
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
