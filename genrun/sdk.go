package genrun

import (
	"context"
	"encoding/json"
	"fmt"

	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/genai"
)

// generateViaGenAI is the current official SDK surface:
// client.Models.GenerateContent against the Gemini API backend.
func generateViaGenAI(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	// No plain text came back; show the whole response instead.
	return marshalResponse(resp), nil
}

// generateViaLegacySDK is the older official SDK surface:
// GenerativeModel(model).GenerateContent with an API-key option.
func generateViaLegacySDK(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := legacy.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("generative-ai-go client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(model).GenerateContent(ctx, legacy.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generative-ai-go generate: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(legacy.Text); ok && t != "" {
				return string(t), nil
			}
		}
	}
	return marshalResponse(resp), nil
}

func marshalResponse(resp any) string {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf("%+v", resp)
	}
	return string(raw)
}
