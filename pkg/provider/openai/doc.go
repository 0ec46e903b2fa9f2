// Package openai implements the codec for OpenAI-compatible completion
// servers. Headers follow the hosted inference policy and the body follows
// the completion-style shape, so both delegate to existing codecs; responses
// are either a choices list or a FastAPI-style validation error.
package openai
