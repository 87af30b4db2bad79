package api

import "net/http"

// sessionInvalidMessages is the exact-match set of backend phrases that mean
// the bearer token no longer identifies a live session. The backend matches
// these strings literally; any wording change there must be mirrored here,
// which is the reason the check lives behind a single named function.
var sessionInvalidMessages = map[string]struct{}{
	"Token expired!":                      {},
	"Invalid token!":                      {},
	"User not found":                      {},
	"Token is not valid":                  {},
	"Session expired. Please login again": {},
}

// IsSessionInvalid reports whether a response status and server message
// signal an ended session. Only 401s with a known phrase qualify; every other
// failure stays the caller's responsibility.
func IsSessionInvalid(status int, message string) bool {
	if status != http.StatusUnauthorized {
		return false
	}
	_, ok := sessionInvalidMessages[message]
	return ok
}
