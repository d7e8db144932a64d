package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var _ Analyzer = (*ChatCompletionsAnalyzer)(nil)

// ChatCompletionsAnalyzer speaks the OpenAI-compatible /chat/completions
// shape used by OpenAI, DeepSeek and xAI: one user message carrying the
// prompt and the image as a base64 data URI, answered with the result JSON
// at choices[0].message.content. One type serves all three providers; only
// endpoint, key and model name differ.
type ChatCompletionsAnalyzer struct {
	id       string
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewChatCompletionsAnalyzer(d Descriptor, client *http.Client) *ChatCompletionsAnalyzer {
	return &ChatCompletionsAnalyzer{
		id:       d.ID,
		endpoint: d.Endpoint,
		apiKey:   d.APIKey,
		model:    d.Model,
		client:   client,
	}
}

type chatRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessage      `json:"messages"`
	ResponseFormat chatResponseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string            `json:"role"`
	Content []chatContentPart `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *ChatCompletionsAnalyzer) Analyze(ctx context.Context, imageB64, prompt string) (*BillExtraction, error) {
	body, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContentPart{
				{Type: "text", Text: prompt + " Respond with raw JSON only."},
				{Type: "image_url", ImageURL: &chatImageURL{URL: "data:image/jpeg;base64," + imageB64}},
			},
		}},
		ResponseFormat: chatResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	res, err := a.client.Do(req)
	if err != nil {
		return nil, wrapTransportError(a.id, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		resBody, _ := io.ReadAll(res.Body)
		return nil, &ProviderError{Provider: a.id, StatusCode: res.StatusCode, Body: string(resBody)}
	}

	var envelope chatResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, &MalformedResponseError{Provider: a.id, Cause: err}
	}
	if len(envelope.Choices) == 0 {
		return nil, &MalformedResponseError{Provider: a.id, Cause: errors.New("no choices in response")}
	}

	return decodeExtraction(a.id, envelope.Choices[0].Message.Content)
}
