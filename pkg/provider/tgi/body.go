package tgi

import "maps"

// BuildBody returns a copy of body with the prompt set as "inputs" and
// parameters.return_full_text forced to false. Other fields pass through.
func BuildBody(prompt string, body map[string]any) map[string]any {
	out := maps.Clone(body)
	if out == nil {
		out = make(map[string]any, 2)
	}

	out["inputs"] = prompt

	if params, ok := out["parameters"].(map[string]any); ok {
		params = maps.Clone(params)
		params["return_full_text"] = false
		out["parameters"] = params
	} else {
		out["parameters"] = map[string]any{"return_full_text": false}
	}

	return out
}
