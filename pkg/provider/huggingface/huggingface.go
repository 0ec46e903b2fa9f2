package huggingface

import (
	"net/http"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/provider/tgi"
)

// DefaultBaseURL is the hosted inference API used when no URL is configured.
const DefaultBaseURL = "https://api-inference.huggingface.co/models/"

// BuildHeaders delegates to tgi.BuildHeaders.
func BuildHeaders(apiToken string, ide api.Ide) (http.Header, error) {
	return tgi.BuildHeaders(apiToken, ide)
}

// BuildBody delegates to tgi.BuildBody.
func BuildBody(prompt string, body map[string]any) map[string]any {
	return tgi.BuildBody(prompt, body)
}

// ParseGenerations decodes an inference API response. Error payloads are
// reported as huggingface_error.
func ParseGenerations(text string) ([]api.Generation, error) {
	return tgi.Decode(text, api.NewHuggingFaceError)
}

// Endpoint returns url, or the hosted model URL when url is empty.
func Endpoint(url, model string) string {
	if url == "" {
		return DefaultBaseURL + model
	}
	return url
}
