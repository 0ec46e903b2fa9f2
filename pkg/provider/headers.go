package provider

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/net/http/httpguts"

	"github.com/rhuss/llmls/pkg/api"
)

// Name and Version identify this client in User-Agent headers.
// Version is overridden at link time for release builds.
var (
	Name    = "llm-ls"
	Version = "0.5.3"
)

// RuntimeTag is the runtime component of the User-Agent header.
const RuntimeTag = "go"

// UserAgent returns the User-Agent value sent to hosted backends.
func UserAgent(ide api.Ide) string {
	return fmt.Sprintf("%s/%s; %s/unknown; ide/%s", Name, Version, RuntimeTag, ide.Tag())
}

var errInvalidHeaderValue = errors.New("value contains characters not allowed in an HTTP header")

// SetHeader sets name to value on h, rejecting values that are not valid in
// an HTTP header field.
func SetHeader(h http.Header, name, value string) error {
	if !httpguts.ValidHeaderFieldValue(value) {
		return api.NewHeaderError(name, errInvalidHeaderValue)
	}
	h.Set(name, value)
	return nil
}
