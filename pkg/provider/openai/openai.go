package openai

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/provider"
	"github.com/rhuss/llmls/pkg/provider/huggingface"
	"github.com/rhuss/llmls/pkg/provider/ollama"
)

// BuildHeaders delegates to huggingface.BuildHeaders.
func BuildHeaders(apiToken string, ide api.Ide) (http.Header, error) {
	return huggingface.BuildHeaders(apiToken, ide)
}

// BuildBody delegates to ollama.BuildBody.
func BuildBody(model, prompt string, body map[string]any) map[string]any {
	return ollama.BuildBody(model, prompt, body)
}

type outcome struct {
	generations []api.Generation
	details     []api.ValidationDetail
	isError     bool
}

var shapes = []provider.Shape[outcome]{
	{Name: "completion", Decode: decodeCompletion},
	{Name: "validation_error", Decode: decodeValidationError},
}

func decodeCompletion(doc gjson.Result) (outcome, error) {
	choices, err := provider.ArrayField(doc, "choices")
	if err != nil {
		return outcome{}, err
	}
	gens := make([]api.Generation, 0, len(choices))
	for _, c := range choices {
		text, err := provider.StringField(c, "text")
		if err != nil {
			return outcome{}, err
		}
		gens = append(gens, api.Generation{GeneratedText: text})
	}
	return outcome{generations: gens}, nil
}

func decodeValidationError(doc gjson.Result) (outcome, error) {
	records, err := provider.ArrayField(doc, "detail")
	if err != nil {
		return outcome{}, err
	}
	details := make([]api.ValidationDetail, 0, len(records))
	for _, r := range records {
		d, err := decodeDetail(r)
		if err != nil {
			return outcome{}, err
		}
		details = append(details, d)
	}
	return outcome{details: details, isError: true}, nil
}

// decodeDetail matches one {"loc", "msg", "type"} validation record.
func decodeDetail(r gjson.Result) (api.ValidationDetail, error) {
	raw, err := provider.Field(r, "loc")
	if err != nil {
		return api.ValidationDetail{}, err
	}
	var loc api.ErrorLocation
	if err := json.Unmarshal([]byte(raw.Raw), &loc); err != nil {
		return api.ValidationDetail{}, fmt.Errorf("field \"loc\": %w", err)
	}
	msg, err := provider.StringField(r, "msg")
	if err != nil {
		return api.ValidationDetail{}, err
	}
	typ, err := provider.StringField(r, "type")
	if err != nil {
		return api.ValidationDetail{}, err
	}
	return api.ValidationDetail{Loc: loc, Msg: msg, Type: typ}, nil
}

// ParseGenerations decodes an OpenAI-compatible completion response into
// one generation per choice, or an openai_error carrying the validation
// details.
func ParseGenerations(text string) ([]api.Generation, error) {
	res, err := provider.Discriminate(text, shapes...)
	if err != nil {
		return nil, err
	}
	if res.isError {
		return nil, api.NewOpenAIError(res.details)
	}
	return res.generations, nil
}
