package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerativeModel is the slice of the genai model surface the client uses.
// Tests swap in a fake; production wires *genai.GenerativeModel.
type GenerativeModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// AIClient wraps the Gemini API.
type AIClient struct {
	client *genai.Client
	model  GenerativeModel
}

// generateAttempts is how many times a generation is tried before giving up.
// Flash-lite occasionally returns transient 5xx errors under load.
const generateAttempts = 2

// CleanedListing is the structured response we want from Gemini when tidying
// a raw auction listing for the feed embed.
type CleanedListing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price,omitempty"`
	Venue       string `json:"venue,omitempty"`
}

// PatternWizardResponse is the structured response for converting a user's
// plain-English request into a candidate watch pattern. The suggested regex
// still goes through the safety validator before it is staged; Gemini is a
// convenience, never a bypass.
type PatternWizardResponse struct {
	Pattern          string   `json:"pattern"`                     // suggested regex over the second-level name
	TLDFilter        string   `json:"tld_filter,omitempty"`        // e.g. "com", empty for any
	MaxPrice         float64  `json:"max_price,omitempty"`         // 0 for no limit
	Description      string   `json:"description"`                 // human restatement of the rule
	TooBroad         bool     `json:"too_broad"`                   // warns if this would match most of the feed
	BroadReason      string   `json:"broad_reason,omitempty"`      // why is it too broad?
	BroadSuggestions []string `json:"broad_suggestions,omitempty"` // specific ways to narrow it down
	IsValid          bool     `json:"is_valid"`                    // false when the request can't be expressed as a pattern
	ErrorMessage     string   `json:"error_message,omitempty"`     // explanation when is_valid is false
}

// NewAIClient initializes the Gemini client.
func NewAIClient(ctx context.Context, apiKey string) (*AIClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.ResponseMIMEType = "application/json" // Force structured JSON output

	schema := &genai.Schema{
		Type: genai.TypeObject,
	}
	model.ResponseSchema = schema

	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// Close closes the underlying client connection.
func (c *AIClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// CleanListing normalizes a raw auction listing's domain and seller notes
// into a concise, feed-ready summary.
func (c *AIClient) CleanListing(ctx context.Context, domain, sellerNotes string) (*CleanedListing, error) {
	prompt := fmt.Sprintf("%s\n\n%s", CleanListingSystemInstruction,
		fmt.Sprintf(CleanListingUserPromptTemplate, domain, sellerNotes))

	resp, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var cleaned CleanedListing
	if err := parseJSONResponse(resp, &cleaned); err != nil {
		return nil, err
	}
	return &cleaned, nil
}

// RunPatternWizard converts a user's natural language request into a
// candidate watch pattern (regex + optional TLD filter + optional budget).
func (c *AIClient) RunPatternWizard(ctx context.Context, userRequest, promptOverride string) (*PatternWizardResponse, error) {
	basePrompt := promptOverride
	if basePrompt == "" {
		basePrompt = DefaultWizardPrompt
	}

	prompt := fmt.Sprintf("%s\n\n%s", basePrompt,
		fmt.Sprintf(WizardUserPromptTemplate, userRequest))

	resp, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var wizard PatternWizardResponse
	if err := parseJSONResponse(resp, &wizard); err != nil {
		return nil, err
	}
	return &wizard, nil
}

// generate calls the model, retrying once on transient failure.
func (c *AIClient) generate(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		resp, err = c.model.GenerateContent(ctx, genai.Text(prompt))
		if err == nil {
			return resp, nil
		}
		log.Printf("Gemini generation attempt %d failed: %v", attempt, err)
	}
	return nil, fmt.Errorf("gemini generation failed: %w", err)
}

// parseJSONResponse is a helper that unmarshals the model's JSON reply.
func parseJSONResponse(resp *genai.GenerateContentResponse, v interface{}) error {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("empty response from model")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return fmt.Errorf("expected text part, got %T", part)
	}

	str := string(text)
	// With ResponseMIMEType="application/json" the reply should be bare JSON.
	if err := json.Unmarshal([]byte(str), v); err != nil {
		log.Printf("Failed to unmarshal JSON: %s", str)
		return fmt.Errorf("JSON parse error: %w", err)
	}

	return nil
}
