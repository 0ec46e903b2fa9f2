// Package client performs the HTTP round trip that the backend package
// leaves to its caller: it builds headers and body with backend.Build, posts
// them to the backend endpoint, and feeds the raw reply to backend.Parse.
// Network failures are mapped to transport_error; there are no retries.
package client
