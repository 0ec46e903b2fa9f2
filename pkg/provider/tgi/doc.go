// Package tgi implements the codec for text-generation-inference servers.
// It builds the User-Agent and bearer headers, shapes the inputs/parameters
// request body, and decodes single, list, and error responses.
//
// The HuggingFace inference API speaks the same protocol; the huggingface
// package delegates to the exported helpers here.
package tgi
