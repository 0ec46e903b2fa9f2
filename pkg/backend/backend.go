package backend

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a supported completion backend.
type Kind string

const (
	KindHuggingFace Kind = "huggingface"
	KindTGI         Kind = "tgi"
	KindOllama      Kind = "ollama"
	KindOpenAI      Kind = "openai"
)

// Kinds lists every supported backend kind.
var Kinds = []Kind{KindHuggingFace, KindTGI, KindOllama, KindOpenAI}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindHuggingFace, KindTGI, KindOllama, KindOpenAI:
		return true
	}
	return false
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown backend %q", s)
	}
	return k, nil
}

// Backend selects a provider and carries its connection data. The
// serialized form is tagged: {"backend": "tgi", "url": "http://..."}.
type Backend struct {
	Kind Kind   `json:"backend"`
	URL  string `json:"url,omitempty"`
}

// HuggingFace selects the HuggingFace inference API. An empty url uses the
// hosted endpoint for the requested model.
func HuggingFace(url string) Backend { return Backend{Kind: KindHuggingFace, URL: url} }

// TGI selects a text-generation-inference server.
func TGI(url string) Backend { return Backend{Kind: KindTGI, URL: url} }

// Ollama selects a local model server.
func Ollama(url string) Backend { return Backend{Kind: KindOllama, URL: url} }

// OpenAI selects an OpenAI-compatible completion server.
func OpenAI(url string) Backend { return Backend{Kind: KindOpenAI, URL: url} }

func (b Backend) String() string {
	if b.URL == "" {
		return string(b.Kind)
	}
	return fmt.Sprintf("%s(%s)", b.Kind, b.URL)
}

// backendFields avoids recursing into UnmarshalJSON.
type backendFields struct {
	Kind Kind   `json:"backend"`
	URL  string `json:"url"`
}

func (f backendFields) validate() (Backend, error) {
	kind, err := ParseKind(string(f.Kind))
	if err != nil {
		return Backend{}, err
	}
	return Backend{Kind: kind, URL: f.URL}, nil
}

// UnmarshalJSON decodes the tagged form and rejects unknown kinds. Fields
// absent from data keep their current values.
func (b *Backend) UnmarshalJSON(data []byte) error {
	f := backendFields(*b)
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	v, err := f.validate()
	if err != nil {
		return err
	}
	*b = v
	return nil
}
