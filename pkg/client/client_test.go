package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/backend"
	"github.com/rhuss/llmls/pkg/debug"
)

// recorded captures what the test server received.
type recorded struct {
	headers http.Header
	body    map[string]any
}

func newServer(t *testing.T, status int, reply string, rec *recorded) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		data, _ := io.ReadAll(r.Body)
		if rec != nil {
			rec.headers = r.Header.Clone()
			if err := json.Unmarshal(data, &rec.body); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestComplete_TGI(t *testing.T) {
	var rec recorded
	srv := newServer(t, http.StatusOK, `[{"generated_text":"return a + b"}]`, &rec)

	c := New(5 * time.Second)
	defer c.Close()

	gens, err := c.Complete(context.Background(), backend.TGI(srv.URL), backend.Request{
		Model:    "bigcode/starcoder",
		Prompt:   "def add(a, b):",
		APIToken: "hf_token",
		Ide:      api.IdeNeovim,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []api.Generation{{GeneratedText: "return a + b"}}
	if !reflect.DeepEqual(gens, want) {
		t.Errorf("expected %v, got %v", want, gens)
	}
	if rec.headers.Get("Authorization") != "Bearer hf_token" {
		t.Errorf("expected bearer header, got %q", rec.headers.Get("Authorization"))
	}
	if rec.headers.Get("Content-Type") != "application/json" {
		t.Errorf("expected JSON content type, got %q", rec.headers.Get("Content-Type"))
	}
	if rec.body["inputs"] != "def add(a, b):" {
		t.Errorf("expected inputs in body, got %v", rec.body)
	}
}

func TestComplete_Ollama(t *testing.T) {
	var rec recorded
	srv := newServer(t, http.StatusOK, `{"model":"codellama","response":"}","done":true}`, &rec)

	gens, err := New(0).Complete(context.Background(), backend.Ollama(srv.URL), backend.Request{
		Model:    "codellama:7b",
		Prompt:   "func main() {",
		APIToken: "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 1 || gens[0].GeneratedText != "}" {
		t.Errorf("unexpected generations %v", gens)
	}
	if rec.headers.Get("Authorization") != "" {
		t.Error("expected no Authorization header for ollama")
	}
	if rec.body["n_predict"] != float64(32) || rec.body["stream"] != false {
		t.Errorf("unexpected body %v", rec.body)
	}
}

func TestComplete_ErrorPayloadOnErrorStatus(t *testing.T) {
	srv := newServer(t, http.StatusUnprocessableEntity, `{"detail":[{"loc":"prompt","msg":"required","type":"missing"}]}`, nil)

	_, err := New(0).Complete(context.Background(), backend.OpenAI(srv.URL), backend.Request{Model: "m"})

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Kind != api.ErrorKindOpenAI {
		t.Errorf("expected kind %q, got %q", api.ErrorKindOpenAI, apiErr.Kind)
	}
	if apiErr.Message != "prompt: required (missing)" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestComplete_NonJSONReply(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, "Bad Gateway", nil)

	gens, err := New(0).Complete(context.Background(), backend.TGI(srv.URL), backend.Request{})
	if gens != nil {
		t.Errorf("expected no generations, got %v", gens)
	}
	if !api.IsKind(err, api.ErrorKindMalformedResponse) {
		t.Fatalf("expected malformed_response, got %v", err)
	}
}

func TestComplete_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(time.Second).Complete(context.Background(), backend.TGI(url), backend.Request{})
	if !api.IsKind(err, api.ErrorKindTransport) {
		t.Fatalf("expected transport_error, got %v", err)
	}
}

func TestComplete_HeaderErrorBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(0).Complete(context.Background(), backend.TGI(srv.URL), backend.Request{APIToken: "bad\r\ntoken"})
	if !api.IsKind(err, api.ErrorKindHeader) {
		t.Fatalf("expected header_error, got %v", err)
	}
	if called {
		t.Error("expected no request to reach the server")
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"generated_text":"x"}`, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(0).Complete(ctx, backend.TGI(srv.URL), backend.Request{})
	if !api.IsKind(err, api.ErrorKindTransport) {
		t.Fatalf("expected transport_error, got %v", err)
	}
}

func TestOutcomeLabel(t *testing.T) {
	if got := outcomeLabel(api.NewOllamaError("x")); got != "ollama_error" {
		t.Errorf("expected %q, got %q", "ollama_error", got)
	}
	if got := outcomeLabel(errors.New("x")); got != "unknown" {
		t.Errorf("expected %q, got %q", "unknown", got)
	}
}

func TestNewWithHTTPClient(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"generated_text":"x"}`, nil)

	c := NewWithHTTPClient(srv.Client())
	defer c.Close()

	gens, err := c.Complete(context.Background(), backend.TGI(srv.URL), backend.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gens) != 1 || gens[0].GeneratedText != "x" {
		t.Errorf("unexpected generations %v", gens)
	}
}

func TestComplete_ResponseTooLarge(t *testing.T) {
	reply := `{"generated_text":"0123456789"}`
	srv := newServer(t, http.StatusOK, reply, nil)

	c := NewWithHTTPClient(srv.Client())
	c.maxBytes = int64(len(reply)) - 1

	_, err := c.Complete(context.Background(), backend.TGI(srv.URL), backend.Request{})
	if !api.IsKind(err, api.ErrorKindTransport) {
		t.Fatalf("expected transport_error, got %v", err)
	}
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Errorf("expected ErrResponseTooLarge, got %v", err)
	}

	c.maxBytes = int64(len(reply))
	if _, err := c.Complete(context.Background(), backend.TGI(srv.URL), backend.Request{}); err != nil {
		t.Errorf("expected a reply at the limit to be accepted, got %v", err)
	}
}

func TestComplete_TraceDumpsRequest(t *testing.T) {
	t.Setenv("LLMLS_DEBUG", "")
	t.Setenv("LLMLS_LOG_LEVEL", "")
	origLogger := slog.Default()
	defer func() {
		debug.Init("", "INFO", nil)
		slog.SetDefault(origLogger)
	}()

	var buf bytes.Buffer
	debug.Init("client", "TRACE", &buf)

	srv := newServer(t, http.StatusOK, `{"generated_text":"x"}`, nil)
	if _, err := NewWithHTTPClient(srv.Client()).Complete(context.Background(), backend.TGI(srv.URL), backend.Request{Prompt: "dump me"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "> POST "+srv.URL+"\n") {
		t.Errorf("expected raw request line, got %q", out)
	}
	if !strings.Contains(out, `"inputs":"dump me"`) {
		t.Errorf("expected raw request body, got %q", out)
	}
}
