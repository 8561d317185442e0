package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"luminadecor/models"
)

// AnalysisRequest carries the intake collected by the wizard.
type AnalysisRequest struct {
	Image     []byte
	MIMEType  string
	EventType string
	Budget    string
	// Language is the display name of the language descriptive text should use.
	Language  string
	LowBudget bool
}

// AnalyzeRoom asks the model for a decoration plan and validates the decoded
// result before returning it.
func (c *Client) AnalyzeRoom(ctx context.Context, req AnalysisRequest) (models.AnalysisResult, error) {
	if len(req.Image) == 0 {
		return models.AnalysisResult{}, errors.New("ai: image must not be empty")
	}
	if strings.TrimSpace(req.EventType) == "" || strings.TrimSpace(req.Budget) == "" {
		return models.AnalysisResult{}, errors.New("ai: event type and budget are required")
	}

	mimeType := strings.TrimSpace(req.MIMEType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(req.Image)

	payload := map[string]any{
		"model":           c.model,
		"temperature":     c.temperature,
		"response_format": map[string]string{"type": "json_object"},
		"messages": []map[string]any{
			{
				"role":    "system",
				"content": systemInstruction,
			},
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": buildAnalysisPrompt(req)},
					{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
				},
			},
		},
	}

	content, err := c.performChatCompletion(ctx, payload)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	result, err := decodeAnalysis(content)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if err := Validate(result); err != nil {
		return models.AnalysisResult{}, err
	}
	return result, nil
}

func decodeAnalysis(content string) (models.AnalysisResult, error) {
	var result models.AnalysisResult
	decoder := json.NewDecoder(bytes.NewReader([]byte(content)))
	if err := decoder.Decode(&result); err != nil {
		return models.AnalysisResult{}, &ValidationError{Kind: ErrMalformedResponse, Reason: fmt.Sprintf("decode analysis: %v", err)}
	}
	if decoder.More() {
		return models.AnalysisResult{}, &ValidationError{Kind: ErrMalformedResponse, Reason: "trailing data after analysis object"}
	}
	return result, nil
}
