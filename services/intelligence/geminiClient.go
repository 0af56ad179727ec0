// File: services/intelligence/geminiClient.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"campusporter/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPrompt = `You are a notification specialist. Your job is to create concise and informative push notifications for a campus delivery service.

Based on the delivery request status, requester name and the "Include Details" flag, craft a notification title and body.

If "Include Details" is true, include the package details in the notification body. Otherwise keep the notification brief.
The location should always be included. Mention the ETA only when one is given.
Reply with JSON: {"notificationTitle": string, "notificationBody": string}.`

// GeminiClient generates notification copy with a Gemini model.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"notificationTitle": {Type: genai.TypeString, Description: "The title of the push notification."},
			"notificationBody":  {Type: genai.TypeString, Description: "The body of the push notification."},
		},
		Required: []string{"notificationTitle", "notificationBody"},
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Generate implements notification.TextGenerator.
func (g *GeminiClient) Generate(ctx context.Context, in models.NotificationInput) (models.NotificationContent, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(in)))
	if err != nil {
		return models.NotificationContent{}, fmt.Errorf("gemini generate error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.NotificationContent{}, fmt.Errorf("gemini generate error: no candidates returned")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return parseNotification(sb.String())
}

// buildPrompt renders the request context. The detail decision is made here, not by the model.
func buildPrompt(in models.NotificationInput) string {
	porter := in.PorterName
	if porter == "" {
		porter = "unassigned"
	}
	includeDetails := in.Status.IncludesPackageDetails()

	var sb strings.Builder
	sb.WriteString("Delivery Request Update:\n\n")
	fmt.Fprintf(&sb, "Request ID: %s\n", in.RequestID)
	fmt.Fprintf(&sb, "Status: %s\n", in.Status)
	fmt.Fprintf(&sb, "Requester: %s\n", in.RequesterName)
	fmt.Fprintf(&sb, "Porter: %s\n", porter)
	fmt.Fprintf(&sb, "Location: %s\n\n", in.Location)
	fmt.Fprintf(&sb, "Include Details: %t\n", includeDetails)
	if includeDetails && in.PackageDetails != "" {
		fmt.Fprintf(&sb, "Package Details: %s\n", in.PackageDetails)
	}
	if in.ETA != "" {
		fmt.Fprintf(&sb, "ETA: %s minutes\n", in.ETA)
	}
	return sb.String()
}

// parseNotification decodes the model output, tolerating a fenced code block.
func parseNotification(text string) (models.NotificationContent, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var out models.NotificationContent
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return models.NotificationContent{}, fmt.Errorf("gemini: malformed notification JSON: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" || strings.TrimSpace(out.Body) == "" {
		return models.NotificationContent{}, fmt.Errorf("gemini: notification missing title or body")
	}
	return out, nil
}
