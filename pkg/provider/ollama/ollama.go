package ollama

import (
	"maps"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/provider"
)

// MaxPredict caps the tokens generated per completion-style request.
const MaxPredict = 32

// BuildHeaders returns an empty header set. Local servers take no token.
func BuildHeaders() http.Header {
	return make(http.Header)
}

// BuildBody returns a copy of body with prompt, model, stream=false and
// n_predict set. Other fields pass through.
func BuildBody(model, prompt string, body map[string]any) map[string]any {
	out := maps.Clone(body)
	if out == nil {
		out = make(map[string]any, 4)
	}

	out["prompt"] = prompt
	out["model"] = model
	out["stream"] = false
	out["n_predict"] = MaxPredict

	return out
}

// outcome holds a decoded generation or an error message.
type outcome struct {
	generation api.Generation
	errMessage *string
}

// Shapes are tried in this order: the llama.cpp /completion reply
// {"content"}, the Ollama /api/generate reply {"response"}, then {"error"}.
var shapes = []provider.Shape[outcome]{
	{Name: "llamacpp_generation", Decode: decodeLlamaCpp},
	{Name: "generation", Decode: decodeGeneration},
	{Name: "error", Decode: decodeError},
}

func decodeLlamaCpp(doc gjson.Result) (outcome, error) {
	text, err := provider.StringField(doc, "content")
	if err != nil {
		return outcome{}, err
	}
	return outcome{generation: api.Generation{GeneratedText: text}}, nil
}

func decodeGeneration(doc gjson.Result) (outcome, error) {
	text, err := provider.StringField(doc, "response")
	if err != nil {
		return outcome{}, err
	}
	return outcome{generation: api.Generation{GeneratedText: text}}, nil
}

func decodeError(doc gjson.Result) (outcome, error) {
	msg, err := provider.DecodeErrorMessage(doc)
	if err != nil {
		return outcome{}, err
	}
	return outcome{errMessage: &msg}, nil
}

// ParseGenerations decodes a local-server response into a one-element
// generation list, or an ollama_error.
func ParseGenerations(text string) ([]api.Generation, error) {
	res, err := provider.Discriminate(text, shapes...)
	if err != nil {
		return nil, err
	}
	if res.errMessage != nil {
		return nil, api.NewOllamaError(*res.errMessage)
	}
	return []api.Generation{res.generation}, nil
}
