package tgi

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rhuss/llmls/pkg/api"
)

func TestParseGenerations_Single(t *testing.T) {
	gens, err := ParseGenerations(`{"generated_text": "foo"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []api.Generation{{GeneratedText: "foo"}}
	if !reflect.DeepEqual(gens, want) {
		t.Errorf("expected %v, got %v", want, gens)
	}
}

func TestParseGenerations_List(t *testing.T) {
	gens, err := ParseGenerations(`[{"generated_text":"a"},{"generated_text":"b"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []api.Generation{{GeneratedText: "a"}, {GeneratedText: "b"}}
	if !reflect.DeepEqual(gens, want) {
		t.Errorf("expected %v, got %v", want, gens)
	}
}

func TestParseGenerations_ExtraFieldsIgnored(t *testing.T) {
	gens, err := ParseGenerations(`{"generated_text":"x","details":{"finish_reason":"length"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 1 || gens[0].GeneratedText != "x" {
		t.Errorf("unexpected generations %v", gens)
	}
}

func TestParseGenerations_GenerationBeatsError(t *testing.T) {
	gens, err := ParseGenerations(`{"generated_text":"x","error":"ignored"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 1 || gens[0].GeneratedText != "x" {
		t.Errorf("unexpected generations %v", gens)
	}
}

func TestParseGenerations_Error(t *testing.T) {
	_, err := ParseGenerations(`{"error":"Model is overloaded"}`)

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Kind != api.ErrorKindTGI {
		t.Errorf("expected kind %q, got %q", api.ErrorKindTGI, apiErr.Kind)
	}
	if apiErr.Message != "Model is overloaded" {
		t.Errorf("expected message %q, got %q", "Model is overloaded", apiErr.Message)
	}
}

func TestParseGenerations_ListWithBadElement(t *testing.T) {
	_, err := ParseGenerations(`[{"generated_text":"a"},{"text":"b"}]`)
	if !api.IsKind(err, api.ErrorKindMalformedResponse) {
		t.Fatalf("expected malformed_response, got %v", err)
	}
}

func TestParseGenerations_Malformed(t *testing.T) {
	for _, input := range []string{"", "not json", `{"generated_text":`, `{"status":"ok"}`, `null`, `42`} {
		gens, err := ParseGenerations(input)
		if gens != nil {
			t.Errorf("input %q: expected no generations, got %v", input, gens)
		}
		if !api.IsKind(err, api.ErrorKindMalformedResponse) {
			t.Errorf("input %q: expected malformed_response, got %v", input, err)
		}
	}
}

func TestDecode_CustomErrorKind(t *testing.T) {
	_, err := Decode(`{"error":"boom"}`, api.NewHuggingFaceError)
	if !api.IsKind(err, api.ErrorKindHuggingFace) {
		t.Fatalf("expected huggingface_error, got %v", err)
	}
}

func TestParseGenerations_Idempotent(t *testing.T) {
	input := `[{"generated_text":"a"}]`
	first, err1 := ParseGenerations(input)
	second, err2 := ParseGenerations(input)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected equal results, got %v and %v", first, second)
	}
}

func TestParseGenerations_ExactFieldNames(t *testing.T) {
	inputs := []string{
		`{"Generated_Text":"x"}`,
		`{"generated_text":"a","generated_text":"b"}`,
		`[{"GENERATED_TEXT":"a"}]`,
		`{"Error":"boom"}`,
	}
	for _, input := range inputs {
		gens, err := ParseGenerations(input)
		if gens != nil {
			t.Errorf("input %q: expected no generations, got %v", input, gens)
		}
		if !api.IsKind(err, api.ErrorKindMalformedResponse) {
			t.Errorf("input %q: expected malformed_response, got %v", input, err)
		}
	}
}
