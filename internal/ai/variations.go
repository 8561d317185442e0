package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Directive is one stylistic direction for an image variation.
type Directive struct {
	Name  string
	Style string
}

var directives = []Directive{
	{Name: "Balanced", Style: "Create a balanced, symmetrical composition with evenly distributed decorations."},
	{Name: "Atmospheric", Style: "Focus on mood lighting, warmth and ambience. Make it look cosy and magical."},
	{Name: "Grand", Style: "Make it look lavish and full. Emphasise volume in balloons or flowers and richness in decor."},
	{Name: "Minimalist", Style: "Keep it elegant, clean and modern. Use decorations sparingly but effectively."},
}

// VariationDirectives returns the four directives in their display order.
func VariationDirectives() []Directive {
	out := make([]Directive, len(directives))
	copy(out, directives)
	return out
}

// VariationPrompt renders the image-edit instruction for one directive.
func VariationPrompt(eventType, themeName, visualDescription string, d Directive) string {
	var b strings.Builder
	b.WriteString("This is a photo of a room.\n")
	fmt.Fprintf(&b, "Show it decorated for a %q with the theme %q.\n\n", eventType, themeName)
	if desc := strings.TrimSpace(visualDescription); desc != "" {
		b.WriteString("Design context:\n")
		b.WriteString(desc)
		b.WriteString("\n\n")
	}
	b.WriteString("Constraints:\n")
	b.WriteString("1. Keep the room layout, walls and furniture exactly as they are.\n")
	b.WriteString("2. Add the decorations realistically into the space.\n")
	b.WriteString("3. Produce a high-quality interior design visualisation.\n\n")
	fmt.Fprintf(&b, "Style (%s): %s", d.Name, d.Style)
	return b.String()
}

// VariationRequest is one image-edit call.
type VariationRequest struct {
	Image    []byte
	MIMEType string
	Prompt   string
}

// GenerateVariation edits the room photo according to the prompt and returns
// the result as a PNG data URL.
func (c *Client) GenerateVariation(ctx context.Context, req VariationRequest) (string, error) {
	if len(req.Image) == 0 {
		return "", errors.New("ai: image must not be empty")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.New("ai: prompt must not be empty")
	}

	mimeType := strings.TrimSpace(req.MIMEType)
	if mimeType == "" {
		mimeType = "image/png"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	fields := map[string]string{
		"model":  c.imageModel,
		"prompt": req.Prompt,
		"n":      "1",
	}
	for _, name := range []string{"model", "prompt", "n"} {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return "", fmt.Errorf("ai: encode field %s: %w", name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="room`+extensionFor(mimeType)+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("ai: create image part: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return "", fmt.Errorf("ai: write image part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("ai: close multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/edits", &body)
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	var responseData struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
			URL     string `json:"url"`
		} `json:"data"`
	}
	if err := c.do(httpReq, &responseData); err != nil {
		return "", err
	}

	for _, item := range responseData.Data {
		if b64 := strings.TrimSpace(item.B64JSON); b64 != "" {
			return "data:image/png;base64," + b64, nil
		}
		if url := strings.TrimSpace(item.URL); url != "" {
			return url, nil
		}
	}
	return "", fmt.Errorf("%w: no image data in response", ErrMalformedResponse)
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
