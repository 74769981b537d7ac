package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(config *Config) *OpenAIClient {
	model := config.Model
	if model == "" {
		model = openai.GPT4o
	}

	return &OpenAIClient{
		client: openai.NewClient(config.OpenAIAPIKey),
		model:  model,
	}
}

const mealPrompt = `Analyze this meal photo and respond with a single JSON object:
{
  "dish_name": string or null (the dish if you recognize it, West African dishes included),
  "confidence": number between 0 and 1,
  "portion_size": "small" | "medium" | "large",
  "estimated_total_weight_grams": integer,
  "ingredients_detected": [
    {"name": string, "estimated_ratio": number, "texture_type": "oily"|"saucy"|"dry"|"mixed", "confidence": number}
  ],
  "visual_cues": {"oil_level": "none"|"low"|"medium"|"high", "has_fried_items": boolean}
}
Ratios are relative shares of the plate and need not sum to 1.
Respond with JSON only, no commentary.`

func (c *OpenAIClient) AnalyzeMealPhoto(ctx context.Context, imageData []byte) (*MealDetection, json.RawMessage, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(imageData)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: mealPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: fmt.Sprintf("data:image/jpeg;base64,%s", imageBase64),
						},
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("vision request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, nil, fmt.Errorf("no response from vision model")
	}

	raw := extractJSON(resp.Choices[0].Message.Content)

	var detection MealDetection
	if err := json.Unmarshal([]byte(raw), &detection); err != nil {
		return nil, nil, fmt.Errorf("failed to parse detection JSON: %w", err)
	}

	detection.Normalize()

	return &detection, json.RawMessage(raw), nil
}

// extractJSON strips markdown code fences that some models wrap around
// JSON responses despite the response_format instruction.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}
