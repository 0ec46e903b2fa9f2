// Package api defines the uniform result model shared by every completion
// backend: the [Generation] record, the [Ide] client-identity tag, and the
// typed [Error] taxonomy that backend codecs return.
//
// The package has zero external dependencies (Go standard library only) and
// performs no I/O. Provider wire formats are handled in the provider
// packages; only their normalized outcome appears here.
//
// Core types:
//   - [Generation]: One unit of produced text
//   - [Error]: Structured error with kind, message, and optional validation details
//   - [ValidationDetail]: One OpenAI-compatible validation record
//   - [ErrorLocation]: String-or-index location of a validation record
package api
