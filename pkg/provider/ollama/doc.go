// Package ollama implements the codec for local model servers (Ollama and
// llama.cpp's server). It sends no headers, shapes a completion-style body,
// and accepts both the llama.cpp "content" and the Ollama "response" reply.
package ollama
