// Package provider holds the machinery shared by the backend codecs. Each
// codec package (tgi, huggingface, ollama, openai) builds its own headers and
// body and decodes its own response shapes; this package supplies ordered,
// untagged shape discrimination, with exact-name field lookups, so every
// codec classifies payloads the same way.
package provider
