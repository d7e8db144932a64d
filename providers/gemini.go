package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var _ Analyzer = (*GeminiAnalyzer)(nil)

// GeminiAnalyzer speaks the Google generative-language envelope: a multimodal
// request carrying the prompt and the image as inline data, answered by a
// single candidate whose text part embeds the result JSON.
type GeminiAnalyzer struct {
	id       string
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewGeminiAnalyzer(d Descriptor, client *http.Client) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		id:       d.ID,
		endpoint: d.Endpoint,
		apiKey:   d.APIKey,
		client:   client,
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"response_mime_type"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, imageB64, prompt string) (*BillExtraction, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: prompt},
				{InlineData: &geminiInlineData{MimeType: "image/jpeg", Data: imageB64}},
			},
		}},
		GenerationConfig: geminiGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	// Gemini authenticates via a key query parameter rather than a header.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, wrapTransportError(g.id, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		resBody, _ := io.ReadAll(res.Body)
		return nil, &ProviderError{Provider: g.id, StatusCode: res.StatusCode, Body: string(resBody)}
	}

	var envelope geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, &MalformedResponseError{Provider: g.id, Cause: err}
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, &MalformedResponseError{Provider: g.id, Cause: errors.New("no candidates in response")}
	}

	return decodeExtraction(g.id, envelope.Candidates[0].Content.Parts[0].Text)
}
