package provider

import "github.com/tidwall/gjson"

// DecodeErrorMessage matches the {"error": string} payload shared by the
// inference and local-server backends.
func DecodeErrorMessage(doc gjson.Result) (string, error) {
	return StringField(doc, "error")
}
