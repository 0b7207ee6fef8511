// Package api provides typed clients for the streaming service's Web API.
//
// # Overview
//
// The package has one transport and many thin families. Client.do acquires a
// bearer token from its TokenProvider, builds the request URL from the
// configurable base, and classifies non-success responses into stable error
// kinds with user-facing hints. Every family (Player, Devices, Search,
// Playlists, Albums, Artists, Library, Users) decodes its raw payload into
// the domain types in types.go and nothing else leaks HTTP details.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Carry Authorization: Bearer and Accept: application/json headers
//   - Serialize bodies as JSON when given, empty otherwise
//   - Have a 30-second timeout
//   - Return wrapped errors with context about what failed
//
// # Error Classification
//
// Non-2xx responses become *APIError values wrapped with an errs.Kind:
//
//   - Body containing "Insufficient client scope" → ScopeMissing,
//     hint "missing scope, re-login"
//   - 401 → RemoteFailure, hint "token expired or invalid"
//   - 403 → RemoteFailure, hint "resource read-only or missing modify scope"
//   - anything else non-success → RemoteFailure
//
// Network-level failures are Transport errors with the context
// "remote request failed".
//
// # Pagination
//
// List endpoints return {items, next} envelopes. pageAll follows the
// server-provided next URL verbatim until absent, accumulating items in
// order, never asking for more than 50 per page.
package api
