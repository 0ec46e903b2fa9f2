package backend

import (
	"maps"
	"net/http"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/provider/huggingface"
	"github.com/rhuss/llmls/pkg/provider/ollama"
	"github.com/rhuss/llmls/pkg/provider/openai"
	"github.com/rhuss/llmls/pkg/provider/tgi"
)

// Request is the canonical, backend-agnostic description of one completion.
type Request struct {
	Model  string
	Prompt string

	// RequestBody holds caller defaults and overrides merged into the
	// provider body. It is never modified.
	RequestBody map[string]any

	// APIToken is sent as a bearer token when non-empty. The empty string
	// means no token, so an explicitly empty token is never sent.
	APIToken string

	Ide api.Ide
}

// BuildHeaders returns the headers for b's provider.
func BuildHeaders(b Backend, apiToken string, ide api.Ide) (http.Header, error) {
	switch b.Kind {
	case KindHuggingFace:
		return huggingface.BuildHeaders(apiToken, ide)
	case KindOllama:
		return ollama.BuildHeaders(), nil
	case KindOpenAI:
		return openai.BuildHeaders(apiToken, ide)
	case KindTGI:
		return tgi.BuildHeaders(apiToken, ide)
	default:
		return nil, api.NewInvalidBackendError(string(b.Kind))
	}
}

// BuildBody returns the request body for b's provider family. An unknown
// kind returns an unchanged copy of body.
func BuildBody(b Backend, model, prompt string, body map[string]any) map[string]any {
	switch b.Kind {
	case KindHuggingFace, KindTGI:
		return tgi.BuildBody(prompt, body)
	case KindOllama, KindOpenAI:
		return ollama.BuildBody(model, prompt, body)
	default:
		out := maps.Clone(body)
		if out == nil {
			out = map[string]any{}
		}
		return out
	}
}

// ParseGenerations decodes text with b's provider codec.
func ParseGenerations(b Backend, text string) ([]api.Generation, error) {
	switch b.Kind {
	case KindHuggingFace:
		return huggingface.ParseGenerations(text)
	case KindOllama:
		return ollama.ParseGenerations(text)
	case KindOpenAI:
		return openai.ParseGenerations(text)
	case KindTGI:
		return tgi.ParseGenerations(text)
	default:
		return nil, api.NewInvalidBackendError(string(b.Kind))
	}
}

// Build returns the headers and body for req. Header errors abort before
// any body is built.
func Build(b Backend, req Request) (http.Header, map[string]any, error) {
	headers, err := BuildHeaders(b, req.APIToken, req.Ide)
	if err != nil {
		return nil, nil, err
	}
	return headers, BuildBody(b, req.Model, req.Prompt, req.RequestBody), nil
}

// Parse decodes a raw response for b. Exactly one of the results is set.
func Parse(b Backend, text string) ([]api.Generation, error) {
	return ParseGenerations(b, text)
}

// Endpoint returns the URL a completion request for model is sent to.
func Endpoint(b Backend, model string) string {
	if b.Kind == KindHuggingFace {
		return huggingface.Endpoint(b.URL, model)
	}
	return b.URL
}
