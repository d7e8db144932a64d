package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Descriptor is the static configuration for one upstream backend.
type Descriptor struct {
	ID       string
	Kind     Kind
	Endpoint string
	APIKey   string
	Model    string
}

// Kind selects the wire shape an upstream speaks.
type Kind string

const (
	// KindGemini is the Google multimodal envelope.
	KindGemini Kind = "gemini"
	// KindChatCompletions is the OpenAI-compatible chat shape, shared by
	// several providers.
	KindChatCompletions Kind = "chat_completions"
)

// Registry holds one Analyzer per configured provider id. It is built once
// at startup and read-only afterwards. Adding a provider means adding a
// descriptor (or, for a new wire shape, an Analyzer implementation) - never
// editing a conditional.
type Registry struct {
	analyzers map[string]Analyzer
}

// NewRegistry builds adapters for every descriptor. All adapters share one
// HTTP client whose timeout bounds each upstream call; the inbound request
// context still cancels an in-flight call early.
func NewRegistry(descriptors []Descriptor, timeout time.Duration) (*Registry, error) {
	client := &http.Client{Timeout: timeout}

	analyzers := make(map[string]Analyzer, len(descriptors))
	for _, d := range descriptors {
		switch d.Kind {
		case KindGemini:
			analyzers[d.ID] = NewGeminiAnalyzer(d, client)
		case KindChatCompletions:
			analyzers[d.ID] = NewChatCompletionsAnalyzer(d, client)
		default:
			return nil, fmt.Errorf("[providers.NewRegistry] provider %q has unsupported kind %q", d.ID, d.Kind)
		}
	}
	return &Registry{analyzers: analyzers}, nil
}

// Get returns the Analyzer for a caller-supplied provider id.
func (r *Registry) Get(id string) (Analyzer, error) {
	analyzer, ok := r.analyzers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}
	return analyzer, nil
}

// IDs lists the configured provider ids.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.analyzers))
	for id := range r.analyzers {
		ids = append(ids, id)
	}
	return ids
}

// decodeExtraction parses the JSON text a model embedded inside its envelope.
// Upstreams are asked for strict JSON objects, so anything that does not
// decode is a malformed response, not something to guess at.
func decodeExtraction(provider, text string) (*BillExtraction, error) {
	var result BillExtraction
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, &MalformedResponseError{Provider: provider, Cause: err}
	}
	if result.Periods == nil {
		result.Periods = []Period{}
	}
	return &result, nil
}
