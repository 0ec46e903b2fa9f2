package tgi

import (
	"net/http"

	"github.com/rhuss/llmls/pkg/api"
	"github.com/rhuss/llmls/pkg/provider"
)

// BuildHeaders returns the User-Agent header and, when apiToken is set, a
// bearer Authorization header.
func BuildHeaders(apiToken string, ide api.Ide) (http.Header, error) {
	headers := make(http.Header)

	if err := provider.SetHeader(headers, "User-Agent", provider.UserAgent(ide)); err != nil {
		return nil, err
	}

	if apiToken != "" {
		if err := provider.SetHeader(headers, "Authorization", "Bearer "+apiToken); err != nil {
			return nil, err
		}
	}

	return headers, nil
}
