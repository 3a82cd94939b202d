package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

// MockModel satisfies the GenerativeModel interface for testing.
type MockModel struct {
	GenerateContentFn func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

func (m *MockModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, parts...)
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text(s)},
				},
			},
		},
	}
}

func TestCleanListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := &CleanedListing{
			Title:       "cloudbank.com",
			Description: "Aged 2009 domain, clean backlink profile.",
			Price:       "$255 current bid",
			Venue:       "GoDaddy Auctions",
		}
		respJSON, _ := json.Marshal(expected)

		mock := &MockModel{
			GenerateContentFn: func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
				return textResponse(string(respJSON)), nil
			},
		}

		client := &AIClient{model: mock}
		got, err := client.CleanListing(ctx, "cloudbank.com", "Aged domain, registered 2009")

		if err != nil {
			t.Fatalf("CleanListing failed: %v", err)
		}
		if got.Title != expected.Title {
			t.Errorf("got title %q, want %q", got.Title, expected.Title)
		}
	})

	t.Run("Retry on failure", func(t *testing.T) {
		calls := 0
		mock := &MockModel{
			GenerateContentFn: func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
				calls++
				if calls < 2 {
					return nil, errors.New("transient error")
				}
				return textResponse(`{"title":"Success"}`), nil
			},
		}

		client := &AIClient{model: mock}
		_, err := client.CleanListing(ctx, "cloudbank.com", "notes")

		if err != nil {
			t.Errorf("expected success after retry, got error: %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 calls, got %d", calls)
		}
	})

	t.Run("JSON Parse Error", func(t *testing.T) {
		mock := &MockModel{
			GenerateContentFn: func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
				return textResponse(`invalid json`), nil
			},
		}

		client := &AIClient{model: mock}
		_, err := client.CleanListing(ctx, "cloudbank.com", "notes")

		if err == nil {
			t.Error("expected error for invalid JSON, got nil")
		}
	})
}

func TestRunPatternWizard(t *testing.T) {
	ctx := context.Background()

	t.Run("Normal Request", func(t *testing.T) {
		resp := PatternWizardResponse{
			Pattern:     "^pay",
			TLDFilter:   "com",
			MaxPrice:    300,
			Description: "Names starting with 'pay' on .com under $300",
			IsValid:     true,
		}
		respJSON, _ := json.Marshal(resp)

		mock := &MockModel{
			GenerateContentFn: func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
				return textResponse(string(respJSON)), nil
			},
		}

		client := &AIClient{model: mock}
		got, err := client.RunPatternWizard(ctx, "short .com names starting with pay under $300", "")

		if err != nil {
			t.Fatalf("RunPatternWizard failed: %v", err)
		}
		if got.Pattern != "^pay" {
			t.Errorf("unexpected pattern: %q", got.Pattern)
		}
		if got.TLDFilter != "com" || got.MaxPrice != 300 {
			t.Errorf("unexpected filters: tld=%q max=%v", got.TLDFilter, got.MaxPrice)
		}
	})

	t.Run("Too Broad", func(t *testing.T) {
		resp := PatternWizardResponse{
			Pattern:          ".*",
			IsValid:          true,
			TooBroad:         true,
			BroadReason:      "This matches every domain in the feed.",
			BroadSuggestions: []string{"Name a keyword or prefix you care about."},
		}
		respJSON, _ := json.Marshal(resp)

		mock := &MockModel{
			GenerateContentFn: func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
				return textResponse(string(respJSON)), nil
			},
		}

		client := &AIClient{model: mock}
		got, err := client.RunPatternWizard(ctx, "anything good", "")

		if err != nil {
			t.Fatalf("RunPatternWizard failed: %v", err)
		}
		if !got.TooBroad || got.BroadReason == "" {
			t.Errorf("expected too-broad flag with a reason, got %+v", got)
		}
	})

	t.Run("Empty response", func(t *testing.T) {
		mock := &MockModel{
			GenerateContentFn: func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{}, nil
			},
		}

		client := &AIClient{model: mock}
		if _, err := client.RunPatternWizard(ctx, "anything", ""); err == nil {
			t.Error("expected error for empty candidates, got nil")
		}
	})
}
