package tgi

import (
	"github.com/tidwall/gjson"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/provider"
)

// outcome is what one of the inference shapes decoded to: generations, or
// the message of an error payload.
type outcome struct {
	generations []api.Generation
	errMessage  *string
}

var shapes = []provider.Shape[outcome]{
	{Name: "generation", Decode: decodeGeneration},
	{Name: "generations", Decode: decodeGenerations},
	{Name: "error", Decode: decodeError},
}

func decodeGeneration(doc gjson.Result) (outcome, error) {
	text, err := provider.StringField(doc, "generated_text")
	if err != nil {
		return outcome{}, err
	}
	return outcome{generations: []api.Generation{{GeneratedText: text}}}, nil
}

func decodeGenerations(doc gjson.Result) (outcome, error) {
	items, err := provider.Array(doc)
	if err != nil {
		return outcome{}, err
	}
	out := make([]api.Generation, 0, len(items))
	for _, item := range items {
		text, err := provider.StringField(item, "generated_text")
		if err != nil {
			return outcome{}, err
		}
		out = append(out, api.Generation{GeneratedText: text})
	}
	return outcome{generations: out}, nil
}

func decodeError(doc gjson.Result) (outcome, error) {
	msg, err := provider.DecodeErrorMessage(doc)
	if err != nil {
		return outcome{}, err
	}
	return outcome{errMessage: &msg}, nil
}

// Decode classifies an inference-protocol response: a single generation
// object, a list of generation objects, or an error object. An error object
// is converted with newError so callers keep their own error kind.
func Decode(text string, newError func(message string) *api.Error) ([]api.Generation, error) {
	res, err := provider.Discriminate(text, shapes...)
	if err != nil {
		return nil, err
	}
	if res.errMessage != nil {
		return nil, newError(*res.errMessage)
	}
	return res.generations, nil
}

// ParseGenerations decodes a text-generation-inference response.
func ParseGenerations(text string) ([]api.Generation, error) {
	return Decode(text, api.NewTGIError)
}
