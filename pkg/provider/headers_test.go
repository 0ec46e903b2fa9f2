package provider

import (
	"net/http"
	"testing"

	"github.com/rhuss/llmls/pkg/api"
)

func TestUserAgent(t *testing.T) {
	want := "llm-ls/" + Version + "; go/unknown; ide/JetBrains"
	if got := UserAgent(api.IdeJetBrains); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSetHeader(t *testing.T) {
	h := make(http.Header)
	if err := SetHeader(h, "Authorization", "Bearer abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Get("Authorization") != "Bearer abc" {
		t.Errorf("expected header to be set, got %q", h.Get("Authorization"))
	}

	err := SetHeader(h, "User-Agent", "bad\x7fvalue")
	if !api.IsKind(err, api.ErrorKindHeader) {
		t.Fatalf("expected header_error, got %v", err)
	}
	if h.Get("User-Agent") != "" {
		t.Error("expected invalid value not to be set")
	}
}
