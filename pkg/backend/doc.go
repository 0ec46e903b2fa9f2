// Package backend is the single entry surface for adapting completion
// requests to a backend. A [Backend] selector names one of a closed set of
// providers; [Build] and [Parse] route on its kind to the matching codec in
// pkg/provider and return headers, a request body, and either generations or
// a typed *api.Error. Nothing here performs I/O or keeps state between calls.
package backend
