package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/rhuss/llmls/pkg/api"
)

// Shape is one candidate structural interpretation of a response payload.
// Decode returns an error when the payload does not structurally match.
type Shape[T any] struct {
	Name   string
	Decode func(doc gjson.Result) (T, error)
}

// Discriminate decodes text with the first shape that matches, trying shapes
// in the order given. Text that is not valid JSON, or that matches no shape,
// yields a malformed_response error.
func Discriminate[T any](text string, shapes ...Shape[T]) (T, error) {
	var zero T

	if !gjson.Valid(text) {
		return zero, api.NewMalformedResponseError("response is not valid JSON", nil)
	}

	doc := gjson.Parse(text)
	names := make([]string, 0, len(shapes))
	errs := make([]error, 0, len(shapes))
	for _, shape := range shapes {
		v, err := shape.Decode(doc)
		if err == nil {
			return v, nil
		}
		names = append(names, shape.Name)
		errs = append(errs, fmt.Errorf("%s: %w", shape.Name, err))
	}

	return zero, api.NewMalformedResponseError(
		fmt.Sprintf("response did not match any known shape (tried %s)", strings.Join(names, ", ")),
		errors.Join(errs...),
	)
}

var (
	errNotObject = errors.New("expected a JSON object")
	errNotArray  = errors.New("expected a JSON array")
	errNotString = errors.New("expected a JSON string")
)

// Array returns the elements of v, which must be a JSON array.
func Array(v gjson.Result) ([]gjson.Result, error) {
	if !v.IsArray() {
		return nil, errNotArray
	}
	return v.Array(), nil
}

// Field returns the member of obj named exactly name. The member must be
// present once and not null; names are compared case-sensitively.
func Field(obj gjson.Result, name string) (gjson.Result, error) {
	if !obj.IsObject() {
		return gjson.Result{}, errNotObject
	}

	var value gjson.Result
	found := 0
	obj.ForEach(func(key, v gjson.Result) bool {
		if key.String() == name {
			value = v
			found++
		}
		return true
	})

	switch {
	case found == 0 || value.Type == gjson.Null:
		return gjson.Result{}, fmt.Errorf("missing field %q", name)
	case found > 1:
		return gjson.Result{}, fmt.Errorf("duplicate field %q", name)
	}
	return value, nil
}

// StringField returns the string member of obj named name.
func StringField(obj gjson.Result, name string) (string, error) {
	v, err := Field(obj, name)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("field %q: %w", name, errNotString)
	}
	return v.String(), nil
}

// ArrayField returns the elements of the array member of obj named name.
func ArrayField(obj gjson.Result, name string) ([]gjson.Result, error) {
	v, err := Field(obj, name)
	if err != nil {
		return nil, err
	}
	items, err := Array(v)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", name, err)
	}
	return items, nil
}
